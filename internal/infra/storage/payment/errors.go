package payment

import "errors"

var (
	// ErrPaymentNotFound is returned when no ledger row exists for the intent.
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery is returned when SQL execution fails.
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
