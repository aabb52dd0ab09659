package controllers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/dogfish0918-create/Accounting-Software/internal/controllers"
	"github.com/dogfish0918-create/Accounting-Software/internal/models"
	"github.com/dogfish0918-create/Accounting-Software/internal/test"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

func (suite *TestSuiteStandard) TestGetRecordsEmpty() {
	recorder := suite.request(http.MethodGet, "/records", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(`[]`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestRecordLifecycle() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)

	// Create
	recorder := suite.request(http.MethodPost, "/records", map[string]any{
		"CategoryID": food.CategoryID,
		"Title":      "Lunch",
		"Amount":     120,
		"RecordDate": "2024-03-10T12:00:00+01:00",
		"Note":       "with colleagues",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created controllers.RecordCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().NotZero(created.RecordID)
	suite.Assert().Equal(fmt.Sprintf("%s/records/%d", apiURL, created.RecordID), recorder.Header().Get("Location"))

	// List
	recorder = suite.request(http.MethodGet, "/records", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	suite.Assert().JSONEq(fmt.Sprintf(`[{
		"RecordID": %d,
		"CategoryID": %d,
		"Title": "Lunch",
		"Amount": 120,
		"RecordDate": "2024-03-10T11:00:00Z",
		"Note": "with colleagues",
		"CategoryName": "Food",
		"CategoryType": "Expense"
	}]`, created.RecordID, food.CategoryID), recorder.Body.String())

	// Replace
	recorder = suite.request(http.MethodPut, fmt.Sprintf("/records/%d", created.RecordID), map[string]any{
		"CategoryID": food.CategoryID,
		"Title":      "Dinner",
		"Amount":     0,
		"RecordDate": "2024-03-11",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Get
	recorder = suite.request(http.MethodGet, fmt.Sprintf("/records/%d", created.RecordID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var record controllers.Record
	test.DecodeResponse(suite.T(), &recorder, &record)
	suite.Assert().Equal("Dinner", record.Title)
	suite.Assert().Equal(int64(0), record.Amount)
	suite.Assert().Nil(record.Note, "Note must be cleared by a replacement without note")
	suite.Assert().Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), record.RecordDate.Time())

	// Delete
	recorder = suite.request(http.MethodDelete, fmt.Sprintf("/records/%d", created.RecordID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/records/%d", created.RecordID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)

	recorder = suite.request(http.MethodDelete, fmt.Sprintf("/records/%d", created.RecordID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCreateRecordDefaultsToNow() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)

	for _, body := range []string{
		fmt.Sprintf(`{"CategoryID": %d, "Title": "No date", "Amount": 5}`, food.CategoryID),
		fmt.Sprintf(`{"CategoryID": %d, "Title": "Null date", "Amount": 5, "RecordDate": null}`, food.CategoryID),
	} {
		recorder := suite.request(http.MethodPost, "/records", body)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

		var created controllers.RecordCreateResponse
		test.DecodeResponse(suite.T(), &recorder, &created)

		record, err := models.RecordByID(suite.controller.DB, created.RecordID)
		suite.Require().Nil(err)
		suite.Assert().True(now.Equal(record.RecordDate), "expected %s, got %s", now, record.RecordDate)
		suite.Assert().Nil(record.Note)
	}
}

func (suite *TestSuiteStandard) TestUpdateRecordDefaultsToNow() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)
	record := suite.createTestRecord(models.Record{CategoryID: food.CategoryID, RecordDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)})

	recorder := suite.request(http.MethodPut, fmt.Sprintf("/records/%d", record.RecordID), fmt.Sprintf(`{"CategoryID": %d, "Title": "Moved", "Amount": 1}`, food.CategoryID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	detail, err := models.RecordByID(suite.controller.DB, record.RecordID)
	suite.Require().Nil(err)
	suite.Assert().True(now.Equal(detail.RecordDate))
}

func (suite *TestSuiteStandard) TestGetRecordsOrder() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)

	first := suite.createTestRecord(models.Record{CategoryID: food.CategoryID, RecordDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	second := suite.createTestRecord(models.Record{CategoryID: food.CategoryID, RecordDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	latest := suite.createTestRecord(models.Record{CategoryID: food.CategoryID, RecordDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)})

	recorder := suite.request(http.MethodGet, "/records", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var records []controllers.Record
	test.DecodeResponse(suite.T(), &recorder, &records)
	suite.Require().Len(records, 3)
	suite.Assert().Equal(latest.RecordID, records[0].RecordID)
	suite.Assert().Equal(second.RecordID, records[1].RecordID)
	suite.Assert().Equal(first.RecordID, records[2].RecordID)
}

func (suite *TestSuiteStandard) TestCreateRecordUnknownCategory() {
	for _, id := range []uint{0, 9999} {
		recorder := suite.request(http.MethodPost, "/records", fmt.Sprintf(`{"CategoryID": %d, "Title": "Orphan", "Amount": 1}`, id))
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		suite.Assert().JSONEq(`{"error":"the referenced category does not exist"}`, recorder.Body.String())
	}

	recorder := suite.request(http.MethodGet, "/records", nil)
	suite.Assert().JSONEq(`[]`, recorder.Body.String())
}

func (suite *TestSuiteStandard) TestCreateRecordInvalid() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"Empty body", ``, "the request body must not be empty"},
		{"Broken JSON", `{"Title": `, "un-parseable"},
		{"Array", `[]`, "un-parseable"},
		{"Missing category", `{"Title": "x", "Amount": 1}`, "CategoryID is required"},
		{"Missing title", fmt.Sprintf(`{"CategoryID": %d, "Amount": 1}`, food.CategoryID), "Title is required"},
		{"Blank title", fmt.Sprintf(`{"CategoryID": %d, "Title": " \t ", "Amount": 1}`, food.CategoryID), "Title must not be blank"},
		{"Missing amount", fmt.Sprintf(`{"CategoryID": %d, "Title": "x"}`, food.CategoryID), "Amount is required"},
		{"Negative amount", fmt.Sprintf(`{"CategoryID": %d, "Title": "x", "Amount": -5}`, food.CategoryID), "Amount must be at least 0"},
		{"Fractional amount", fmt.Sprintf(`{"CategoryID": %d, "Title": "x", "Amount": 1.5}`, food.CategoryID), "Amount"},
		{"Amount as string", fmt.Sprintf(`{"CategoryID": %d, "Title": "x", "Amount": "1"}`, food.CategoryID), "Amount"},
		{"Invalid date", fmt.Sprintf(`{"CategoryID": %d, "Title": "x", "Amount": 1, "RecordDate": "15.03.2024"}`, food.CategoryID), "invalid date"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, suite.engine, http.MethodPost, apiURL+"/records", tt.body)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
			assert.Contains(t, recorder.Body.String(), tt.msg)
		})
	}

	records, err := models.Records(suite.controller.DB)
	suite.Require().Nil(err)
	suite.Assert().Len(records, 0)
}

func (suite *TestSuiteStandard) TestCreateRecordTrimsTitle() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)

	recorder := suite.request(http.MethodPost, "/records", fmt.Sprintf(`{"CategoryID": %d, "Title": "  Lunch ", "Amount": 1}`, food.CategoryID))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created controllers.RecordCreateResponse
	test.DecodeResponse(suite.T(), &recorder, &created)

	record, err := models.RecordByID(suite.controller.DB, created.RecordID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Lunch", record.Title)
}

func (suite *TestSuiteStandard) TestRecordDetailInvalidID() {
	for _, id := range []string{"abc", "0", "-1", "1.5", "99999999999999999999"} {
		for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions} {
			recorder := suite.request(method, "/records/"+id, `{}`)
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
			suite.Assert().Contains(recorder.Body.String(), "not a valid positive integer", "%s %s", method, id)
		}
	}
}

func (suite *TestSuiteStandard) TestRecordDetailNotFound() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)
	body := fmt.Sprintf(`{"CategoryID": %d, "Title": "x", "Amount": 1}`, food.CategoryID)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions} {
		recorder := suite.request(method, "/records/4711", body)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
		suite.Assert().True(strings.HasPrefix(recorder.Body.String(), `{"error":"there is no record`), recorder.Body.String())
	}
}

func (suite *TestSuiteStandard) TestUpdateRecordInvalid() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)
	record := suite.createTestRecord(models.Record{CategoryID: food.CategoryID, Title: "Keep", Amount: 3})

	for _, body := range []string{
		``,
		fmt.Sprintf(`{"CategoryID": %d, "Title": "", "Amount": 1}`, food.CategoryID),
		fmt.Sprintf(`{"CategoryID": %d, "Title": "x", "Amount": -1}`, food.CategoryID),
		`{"CategoryID": 9999, "Title": "x", "Amount": 1}`,
	} {
		recorder := suite.request(http.MethodPut, fmt.Sprintf("/records/%d", record.RecordID), body)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	}

	detail, err := models.RecordByID(suite.controller.DB, record.RecordID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Keep", detail.Title)
	suite.Assert().Equal(int64(3), detail.Amount)
}

func (suite *TestSuiteStandard) TestOptionsRecords() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)
	record := suite.createTestRecord(models.Record{CategoryID: food.CategoryID})

	recorder := suite.request(http.MethodOptions, "/records", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", recorder.Header().Get("allow"))

	recorder = suite.request(http.MethodOptions, fmt.Sprintf("/records/%d", record.RecordID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PUT, DELETE", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestRecordsDBClosed() {
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)
	record := suite.createTestRecord(models.Record{CategoryID: food.CategoryID})
	suite.CloseDB()

	body := controllers.RecordEditable{CategoryID: ptr(food.CategoryID), Title: "x", Amount: ptr(int64(1))}
	detail := fmt.Sprintf("/records/%d", record.RecordID)

	for _, tt := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/records"},
		{http.MethodPost, "/records"},
		{http.MethodGet, detail},
		{http.MethodPut, detail},
		{http.MethodDelete, detail},
		{http.MethodOptions, detail},
	} {
		recorder := suite.request(tt.method, tt.path, body)
		test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
		suite.Assert().JSONEq(`{"error":"an error occurred on the server during your request"}`, recorder.Body.String(), "%s %s", tt.method, tt.path)
	}
}
