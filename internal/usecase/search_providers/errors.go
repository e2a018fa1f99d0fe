package search_providers

import "errors"

var (
	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("search_providers: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("search_providers: internal error")
)
