package models

import (
	"gorm.io/gorm"
)

// Summary is the income, expense and balance of one month.
type Summary struct {
	Year         int
	Month        int
	TotalIncome  int64
	TotalExpense int64
	Balance      int64
}

type monthTotals struct {
	TotalIncome  int64
	TotalExpense int64
}

// MonthlySummary sums the amounts of all records in the month, separated
// by the type of their category.
//
// Categories with a type other than Income or Expense are not counted.
func MonthlySummary(db *gorm.DB, year, month int) (Summary, error) {
	var totals monthTotals
	err := db.
		Model(&Record{}).
		Select(
			"CAST(COALESCE(SUM(CASE WHEN categories.type = ? THEN records.amount END), 0) AS BIGINT) AS total_income, "+
				"CAST(COALESCE(SUM(CASE WHEN categories.type = ? THEN records.amount END), 0) AS BIGINT) AS total_expense",
			CategoryTypeIncome, CategoryTypeExpense,
		).
		Joins("JOIN categories ON categories.category_id = records.category_id").
		Where(dialectOf(db).MonthCondition("records.record_date"), year, month).
		Find(&totals).Error
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Year:         year,
		Month:        month,
		TotalIncome:  totals.TotalIncome,
		TotalExpense: totals.TotalExpense,
		Balance:      totals.TotalIncome - totals.TotalExpense,
	}, nil
}
