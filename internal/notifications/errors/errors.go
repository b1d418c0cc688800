package errors

import "errors"

var (
	ErrNotFound = errors.New("notification not found")

	ErrInvalidID = errors.New("invalid notification ID format")

	// ErrAlreadyFired means the unique (booking, type) index rejected a
	// one-shot notification that was already created.
	ErrAlreadyFired = errors.New("notification already fired for this booking")
)
