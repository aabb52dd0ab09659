package controllers

import (
	"errors"
	"net/http"

	"github.com/dogfish0918-create/Accounting-Software/internal/httputil"
	"github.com/dogfish0918-create/Accounting-Software/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// abort writes the error response for err.
func abort(c *gin.Context, err error) {
	code := status(err)
	if code == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Str("path", c.FullPath()).Msg(err.Error())
	}

	c.AbortWithStatusJSON(code, httputil.HTTPError{
		Error: err.Error(),
	})
}
