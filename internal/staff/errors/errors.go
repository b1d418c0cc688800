package errors

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidID        = errors.New("invalid id format")
)
