package payments

import "errors"

var (
	// ErrRequestNotFound is returned when the service request does not exist.
	ErrRequestNotFound = errors.New("service request not found")

	// ErrPaymentNotFound is returned when no ledger row matches the intent.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrAccessDenied is returned when the request belongs to another
	// customer or provider.
	ErrAccessDenied = errors.New("access denied")

	// ErrAmountMismatch is returned when the charged amount does not match
	// the request total within the rounding tolerance.
	ErrAmountMismatch = errors.New("amount does not match request total")

	// ErrPaymentDeclined is returned when the processor rejects the charge.
	ErrPaymentDeclined = errors.New("payment declined by processor")

	// ErrInvalidSignature is returned on webhook deliveries that fail
	// authentication.
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrInvalidInput is returned on malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors.
	ErrInternal = errors.New("service: internal error")
)
