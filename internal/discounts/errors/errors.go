package errors

import "errors"

var (
	ErrNotFound   = errors.New("discount request not found")
	ErrInvalidID  = errors.New("invalid id format")
	ErrNotPending = errors.New("discount request already reviewed")
)
