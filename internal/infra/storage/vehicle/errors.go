package vehicle

import "errors"

var (
	// ErrVehicleNotFound is returned when the vehicle does not exist.
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle not found")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")

	// ErrExecQuery is returned when SQL execution fails.
	ErrExecQuery = errors.New("vehicle.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("vehicle.repository: failed to scan row")
)
