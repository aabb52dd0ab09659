package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/dogfish0918-create/Accounting-Software/internal/types"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/rs/zerolog/log"
)

// RegisterValidations adds the custom validation tags used by the request
// types to the validator gin binds with.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	return v.RegisterValidation("notblank", validators.NotBlank)
}

// BindData binds the JSON body of the request to data and validates it.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return ErrRequestBodyEmpty
	}

	if verr := validationError(err); verr != nil {
		return verr
	}

	var jsonUnmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &jsonUnmarshalTypeError) {
		return fmt.Errorf("%w: %s must be of type %s", ErrInvalidBody, jsonUnmarshalTypeError.Field, jsonUnmarshalTypeError.Type)
	}

	if errors.Is(err, types.ErrInvalidDateTime) {
		return err
	}

	log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	return ErrInvalidBody
}

// BindQuery binds the query string of the request to data and validates it.
func BindQuery(c *gin.Context, data any) error {
	err := c.ShouldBindQuery(data)
	if err == nil {
		return nil
	}

	if verr := validationError(err); verr != nil {
		return verr
	}

	var numError *strconv.NumError
	if errors.As(err, &numError) {
		return fmt.Errorf("%w: %q is not a valid number", ErrInvalidQuery, numError.Num)
	}

	return fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
}

// ParseID parses the "id" path parameter.
//
// IDs are positive and fit into a signed 64 bit integer, which is what the
// database stores.
func ParseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return uint(id), nil
}

// validationError converts validator errors to a single readable error.
// It returns nil if err does not stem from validation.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, ValidationErrorToText(e))
	}

	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(messages, ", "))
}

// ValidationErrorToText returns a human readable message for a failed validation.
func ValidationErrorToText(e validator.FieldError) string {
	numeric := false
	switch e.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "min":
		if numeric {
			return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
		}
		return fmt.Sprintf("%s cannot be longer than %s characters", e.Field(), e.Param())
	}
	return fmt.Sprintf("%s is not valid", e.Field())
}
