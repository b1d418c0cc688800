package errors

import "errors"

var (
	ErrPavilionNotFound = errors.New("pavilion not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrInvalidID        = errors.New("invalid id format")
)
