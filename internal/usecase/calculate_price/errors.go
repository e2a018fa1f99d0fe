package calculate_price

import "errors"

var (
	// ErrProviderNotFound is returned when the provider does not exist.
	ErrProviderNotFound = errors.New("calculate_price: provider not found")

	// ErrServiceNotOffered is returned when the provider does not offer
	// the requested service.
	ErrServiceNotOffered = errors.New("calculate_price: service not offered by provider")

	// ErrVehicleNotFound is returned when the vehicle does not exist.
	ErrVehicleNotFound = errors.New("calculate_price: vehicle not found")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("calculate_price: invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("calculate_price: internal error")
)
