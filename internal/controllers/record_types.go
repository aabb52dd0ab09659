package controllers

import (
	"time"

	"github.com/dogfish0918-create/Accounting-Software/internal/models"
	"github.com/dogfish0918-create/Accounting-Software/internal/types"
)

// Record is the API representation of a record with its category.
type Record struct {
	RecordID     uint           `json:"RecordID" example:"17"`
	CategoryID   uint           `json:"CategoryID" example:"3"`
	Title        string         `json:"Title" example:"Groceries"`
	Amount       int64          `json:"Amount" example:"42"`
	RecordDate   types.DateTime `json:"RecordDate" example:"2024-03-15T10:00:00Z"`
	Note         *string        `json:"Note" example:"Weekly shopping"`
	CategoryName string         `json:"CategoryName" example:"Food"`
	CategoryType string         `json:"CategoryType" example:"Expense"`
}

func newRecord(m models.RecordDetail) Record {
	return Record{
		RecordID:     m.RecordID,
		CategoryID:   m.CategoryID,
		Title:        m.Title,
		Amount:       m.Amount,
		RecordDate:   types.NewDateTime(m.RecordDate),
		Note:         m.Note,
		CategoryName: m.CategoryName,
		CategoryType: m.CategoryType,
	}
}

// RecordEditable is the body for creating and replacing records.
type RecordEditable struct {
	CategoryID *uint           `json:"CategoryID" binding:"required" example:"3"`
	Title      string          `json:"Title" binding:"required,notblank" example:"Groceries"`
	Amount     *int64          `json:"Amount" binding:"required,min=0" example:"42"`
	RecordDate *types.DateTime `json:"RecordDate" example:"2024-03-15T10:00:00Z"` // Defaults to the time of the request
	Note       *string         `json:"Note" example:"Weekly shopping"`
}

// model returns the database model for the editable. now is used if no
// record date is set.
func (e RecordEditable) model(now time.Time) models.Record {
	date := now
	if e.RecordDate != nil {
		date = e.RecordDate.Time()
	}

	var categoryID uint
	if e.CategoryID != nil {
		categoryID = *e.CategoryID
	}

	var amount int64
	if e.Amount != nil {
		amount = *e.Amount
	}

	return models.Record{
		CategoryID: categoryID,
		Title:      e.Title,
		Amount:     amount,
		RecordDate: date,
		Note:       e.Note,
	}
}

// RecordCreateResponse is returned when a record has been created.
type RecordCreateResponse struct {
	RecordID uint `json:"RecordID" example:"17"`
}
