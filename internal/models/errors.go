package models

import (
	"errors"
)

var (
	ErrGeneral              = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound     = errors.New("there is no")
	ErrCategoryDoesNotExist = errors.New("the referenced category does not exist")
	ErrUnknownDialect       = errors.New("unsupported database driver")
)
