package controllers

import "github.com/dogfish0918-create/Accounting-Software/internal/models"

// Category is the API representation of a category.
type Category struct {
	CategoryID uint   `json:"CategoryID" example:"3"`
	Name       string `json:"Name" example:"Food"`
	Type       string `json:"Type" example:"Expense"`
}

func newCategory(m models.Category) Category {
	return Category{
		CategoryID: m.CategoryID,
		Name:       m.Name,
		Type:       m.Type,
	}
}
