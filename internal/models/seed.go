package models

import (
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultCategories are created by Seed.
var DefaultCategories = []Category{
	{Name: "Salary", Type: CategoryTypeIncome},
	{Name: "Bonus", Type: CategoryTypeIncome},
	{Name: "Investment", Type: CategoryTypeIncome},
	{Name: "Food", Type: CategoryTypeExpense},
	{Name: "Transport", Type: CategoryTypeExpense},
	{Name: "Housing", Type: CategoryTypeExpense},
	{Name: "Utilities", Type: CategoryTypeExpense},
	{Name: "Entertainment", Type: CategoryTypeExpense},
}

// Seed creates all categories that do not exist yet. Existing categories
// are matched by name and left untouched.
//
// It returns the number of created categories.
func Seed(db *gorm.DB, categories []Category) (int64, error) {
	if len(categories) == 0 {
		return 0, nil
	}

	rows := slices.Clone(categories)
	for i := range rows {
		rows[i].CategoryID = 0
	}

	result := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&rows)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
