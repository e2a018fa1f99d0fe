package servicerequest

import "errors"

var (
	// ErrRequestNotFound is returned when the service request does not exist.
	ErrRequestNotFound = errors.New("servicerequest.repository: request not found")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("servicerequest.repository: failed to build query")

	// ErrExecQuery is returned when SQL execution fails.
	ErrExecQuery = errors.New("servicerequest.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("servicerequest.repository: failed to scan row")
)
