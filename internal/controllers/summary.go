package controllers

import (
	"net/http"

	"github.com/dogfish0918-create/Accounting-Software/internal/httputil"
	"github.com/dogfish0918-create/Accounting-Software/internal/models"
	"github.com/gin-gonic/gin"
)

// SummaryQuery selects the month of a summary.
type SummaryQuery struct {
	Year  int `form:"year" binding:"required,min=1,max=9999"`
	Month int `form:"month" binding:"required,min=1,max=12"`
}

// Summary is the income, expense and balance of a month.
type Summary struct {
	Year         int   `json:"Year" example:"2024"`
	Month        int   `json:"Month" example:"3"`
	TotalIncome  int64 `json:"TotalIncome" example:"5000"`
	TotalExpense int64 `json:"TotalExpense" example:"1500"`
	Balance      int64 `json:"Balance" example:"3500"` // TotalIncome - TotalExpense, can be negative
}

// OptionsSummary returns the allowed HTTP methods.
func (co Controller) OptionsSummary(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetSummary returns the totals for the month given by the year and
// month query parameters.
func (co Controller) GetSummary(c *gin.Context) {
	var query SummaryQuery
	if err := httputil.BindQuery(c, &query); err != nil {
		abort(c, err)
		return
	}

	summary, err := models.MonthlySummary(co.db(c), query.Year, query.Month)
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, Summary{
		Year:         summary.Year,
		Month:        summary.Month,
		TotalIncome:  summary.TotalIncome,
		TotalExpense: summary.TotalExpense,
		Balance:      summary.Balance,
	})
}
