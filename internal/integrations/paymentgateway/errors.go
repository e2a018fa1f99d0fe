package paymentgateway

import "errors"

var (
	// ErrIntentNotFound is returned when the processor does not know the intent.
	ErrIntentNotFound = errors.New("paymentgateway client: intent not found")

	// ErrDeclined is returned when the processor rejects the operation.
	ErrDeclined = errors.New("paymentgateway client: operation declined")

	// ErrInvalidSignature is returned when a webhook signature does not verify.
	ErrInvalidSignature = errors.New("paymentgateway client: invalid webhook signature")

	// ErrInternal is returned on transport or processor failures.
	ErrInternal = errors.New("paymentgateway client: internal error")

	// ErrInvalidResponse is returned when the processor response cannot be decoded.
	ErrInvalidResponse = errors.New("paymentgateway client: invalid response")
)
