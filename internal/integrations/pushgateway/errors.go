package pushgateway

import "errors"

var (
	// ErrRecipientNotFound is returned when the gateway knows no device
	// token for the recipient.
	ErrRecipientNotFound = errors.New("pushgateway client: recipient not found")

	// ErrInternal is returned on transport or gateway failures.
	ErrInternal = errors.New("pushgateway client: internal error")
)
