package models

import (
	"gorm.io/gorm"
)

// Category types that are taken into account for the monthly summary.
const (
	CategoryTypeIncome  = "Income"
	CategoryTypeExpense = "Expense"
)

// Category classifies records as income or expense.
//
// Categories are created when the database is seeded and are never modified
// through the API.
type Category struct {
	CategoryID uint   `gorm:"primaryKey"`
	Name       string `gorm:"uniqueIndex;not null"`
	Type       string `gorm:"not null"`
}

// Categories returns all categories, grouped by type and sorted by name
// within each type.
func Categories(db *gorm.DB) ([]Category, error) {
	var categories []Category
	err := db.
		Order("categories.type ASC").
		Order("categories.name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}
