package requests

import "errors"

var (
	// ErrRequestNotFound is returned when the service request does not exist.
	ErrRequestNotFound = errors.New("service request not found")

	// ErrAccessDenied is returned when the user does not own the request.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidTransition is returned when the requested status change is
	// not an edge of the lifecycle graph.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCannotCancel is returned when the request already left a
	// cancellable state.
	ErrCannotCancel = errors.New("request cannot be cancelled")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
