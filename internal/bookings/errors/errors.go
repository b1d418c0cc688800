package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrPavilionConflict = errors.New("pavilion already booked for overlapping dates")

	ErrInvalidTransition = errors.New("invalid booking status transition")

	ErrOverpayment = errors.New("payment exceeds remaining balance")
)
