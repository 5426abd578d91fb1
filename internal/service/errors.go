package service

import "errors"

var (
	// ErrValidation is returned for missing or malformed input before
	// any external call is made.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a valid query matches zero rows.
	ErrNotFound = errors.New("not found")
)
