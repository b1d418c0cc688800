package errors

import "errors"

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrDishNotFound    = errors.New("dish not found")
	ErrInvalidID       = errors.New("invalid id format")
)
