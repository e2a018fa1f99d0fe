package get_availability

import "errors"

var (
	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("get_availability: provider not found")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("get_availability: internal error")
)
