// Package controllers implements the HTTP handlers of the accounting API.
package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller holds the dependencies of the request handlers.
type Controller struct {
	DB *gorm.DB

	// Now returns the current time. It is used as the date of records
	// that are submitted without one.
	Now func() time.Time
}

// New returns a Controller using the wall clock.
func New(db *gorm.DB) Controller {
	return Controller{
		DB:  db,
		Now: time.Now,
	}
}

// db returns the database handle scoped to the request context.
func (co Controller) db(c *gin.Context) *gorm.DB {
	return co.DB.WithContext(c.Request.Context())
}

func (co Controller) now() time.Time {
	if co.Now == nil {
		return time.Now()
	}
	return co.Now()
}
