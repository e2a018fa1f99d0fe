package outbox

import "errors"

var (
	// ErrMessageNotFound is returned when the outbox message does not exist.
	ErrMessageNotFound = errors.New("outbox.repository: message not found")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")

	// ErrExecQuery is returned when SQL execution fails.
	ErrExecQuery = errors.New("outbox.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("outbox.repository: failed to scan row")
)
