package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is a single income or expense entry.
type Record struct {
	RecordID   uint      `gorm:"primaryKey"`
	CategoryID uint      `gorm:"not null;index"`
	Category   Category  `gorm:"constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Title      string    `gorm:"not null"`
	Amount     int64     `gorm:"not null"` // Whole currency units. The sign is given by the category type
	RecordDate time.Time `gorm:"not null;index"`
	Note       *string
}

// RecordDetail is a record together with the name and type of its category.
type RecordDetail struct {
	RecordID     uint
	CategoryID   uint
	Title        string
	Amount       int64
	RecordDate   time.Time
	Note         *string
	CategoryName string
	CategoryType string
}

// normalize trims the title and stores the date in UTC with second precision.
func (r *Record) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.RecordDate = r.RecordDate.In(time.UTC).Truncate(time.Second)
}

// recordDetails is the base query for records joined with their category.
func recordDetails(db *gorm.DB) *gorm.DB {
	return db.
		Model(&Record{}).
		Select("records.record_id, records.category_id, records.title, records.amount, records.record_date, records.note, categories.name AS category_name, categories.type AS category_type").
		Joins("JOIN categories ON categories.category_id = records.category_id")
}

// Records returns all records, the most recent first. Records with the
// same date are sorted by creation, newest first.
func Records(db *gorm.DB) ([]RecordDetail, error) {
	var details []RecordDetail
	err := recordDetails(db).
		Order("records.record_date DESC").
		Order("records.record_id DESC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}

	for i := range details {
		details[i].RecordDate = details[i].RecordDate.In(time.UTC)
	}

	return details, nil
}

// RecordByID returns a single record.
func RecordByID(db *gorm.DB, id uint) (RecordDetail, error) {
	var detail RecordDetail
	err := recordDetails(db).
		Where("records.record_id = ?", id).
		Take(&detail).Error
	if err != nil {
		return RecordDetail{}, err
	}

	detail.RecordDate = detail.RecordDate.In(time.UTC)
	return detail, nil
}

// CreateRecord inserts the record and sets its RecordID to the one
// generated by the database.
func CreateRecord(db *gorm.DB, record *Record) error {
	record.RecordID = 0
	record.normalize()

	return db.Omit(clause.Associations).Create(record).Error
}

// UpdateRecord replaces all fields of the record with the ID of the
// record passed in.
func UpdateRecord(db *gorm.DB, record Record) error {
	if record.RecordID == 0 {
		return fmt.Errorf("%w record with ID 0", ErrResourceNotFound)
	}
	record.normalize()

	result := db.
		Model(&Record{RecordID: record.RecordID}).
		Updates(map[string]any{
			"category_id": record.CategoryID,
			"title":       record.Title,
			"amount":      record.Amount,
			"record_date": record.RecordDate,
			"note":        record.Note,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w record with ID %d", ErrResourceNotFound, record.RecordID)
	}

	return nil
}

// DeleteRecord deletes a record.
func DeleteRecord(db *gorm.DB, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w record with ID 0", ErrResourceNotFound)
	}

	result := db.Delete(&Record{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w record with ID %d", ErrResourceNotFound, id)
	}

	return nil
}
