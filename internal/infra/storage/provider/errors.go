package provider

import "errors"

var (
	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("provider.repository: provider not found")

	// ErrServiceNotOffered is returned when the provider does not offer
	// the requested service.
	ErrServiceNotOffered = errors.New("provider.repository: service not offered by provider")

	// ErrBuildQuery is returned when SQL construction fails.
	ErrBuildQuery = errors.New("provider.repository: failed to build query")

	// ErrExecQuery is returned when SQL execution fails.
	ErrExecQuery = errors.New("provider.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("provider.repository: failed to scan row")
)
