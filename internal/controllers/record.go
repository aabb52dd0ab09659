package controllers

import (
	"fmt"
	"net/http"

	"github.com/dogfish0918-create/Accounting-Software/internal/httputil"
	"github.com/dogfish0918-create/Accounting-Software/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRecordRoutes registers the routes for records with
// the RouterGroup that is passed.
func (co Controller) RegisterRecordRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsRecords)
		r.GET("", co.GetRecords)
		r.POST("", co.CreateRecord)
	}

	// Monthly summary
	{
		r.OPTIONS("/summary", co.OptionsSummary)
		r.GET("/summary", co.GetSummary)
	}

	// Record with ID
	{
		r.OPTIONS("/:id", co.OptionsRecordDetail)
		r.GET("/:id", co.GetRecord)
		r.PUT("/:id", co.UpdateRecord)
		r.DELETE("/:id", co.DeleteRecord)
	}
}

// OptionsRecords returns the allowed HTTP methods.
func (co Controller) OptionsRecords(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// OptionsRecordDetail returns the allowed HTTP methods for an existing record.
func (co Controller) OptionsRecordDetail(c *gin.Context) {
	id, err := httputil.ParseID(c)
	if err != nil {
		abort(c, err)
		return
	}

	_, err = models.RecordByID(co.db(c), id)
	if err != nil {
		abort(c, err)
		return
	}

	httputil.OptionsGetPutDelete(c)
}

// GetRecords returns all records with their category, the most recent first.
func (co Controller) GetRecords(c *gin.Context) {
	records, err := models.Records(co.db(c))
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Record, 0, len(records))
	for _, record := range records {
		data = append(data, newRecord(record))
	}

	c.JSON(http.StatusOK, data)
}

// GetRecord returns a specific record.
func (co Controller) GetRecord(c *gin.Context) {
	id, err := httputil.ParseID(c)
	if err != nil {
		abort(c, err)
		return
	}

	record, err := models.RecordByID(co.db(c), id)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecord(record))
}

// CreateRecord creates a record and returns its ID.
func (co Controller) CreateRecord(c *gin.Context) {
	var editable RecordEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	record := editable.model(co.now())
	if err := models.CreateRecord(co.db(c), &record); err != nil {
		abort(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/records/%d", httputil.BaseURL(c), record.RecordID))
	c.JSON(http.StatusCreated, RecordCreateResponse{RecordID: record.RecordID})
}

// UpdateRecord replaces all fields of an existing record.
func (co Controller) UpdateRecord(c *gin.Context) {
	id, err := httputil.ParseID(c)
	if err != nil {
		abort(c, err)
		return
	}

	var editable RecordEditable
	if err := httputil.BindData(c, &editable); err != nil {
		abort(c, err)
		return
	}

	record := editable.model(co.now())
	record.RecordID = id

	if err := models.UpdateRecord(co.db(c), record); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteRecord deletes a record.
func (co Controller) DeleteRecord(c *gin.Context) {
	id, err := httputil.ParseID(c)
	if err != nil {
		abort(c, err)
		return
	}

	if err := models.DeleteRecord(co.db(c), id); err != nil {
		abort(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
