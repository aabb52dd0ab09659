package controllers

import (
	"net/http"

	"github.com/dogfish0918-create/Accounting-Software/internal/httputil"
	"github.com/dogfish0918-create/Accounting-Software/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsCategories)
	r.GET("", co.GetCategories)
}

// OptionsCategories returns the allowed HTTP methods.
func (co Controller) OptionsCategories(c *gin.Context) {
	httputil.OptionsGet(c)
}

// GetCategories returns all categories, sorted by type and name.
func (co Controller) GetCategories(c *gin.Context) {
	categories, err := models.Categories(co.db(c))
	if err != nil {
		abort(c, err)
		return
	}

	data := make([]Category, 0, len(categories))
	for _, category := range categories {
		data = append(data, newCategory(category))
	}

	c.JSON(http.StatusOK, data)
}
