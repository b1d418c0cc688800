package errors

import "errors"

var (
	ErrItemNotFound = errors.New("inventory item not found")

	ErrReservationNotFound = errors.New("inventory reservation not found")

	ErrInvalidID = errors.New("invalid inventory ID format")
)
