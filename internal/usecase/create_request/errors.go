package create_request

import "errors"

var (
	ErrInvalidInput            = errors.New("create_request: invalid input")
	ErrVehicleNotFound         = errors.New("create_request: vehicle not found")
	ErrProviderNotFound        = errors.New("create_request: provider not found")
	ErrServiceNotOffered       = errors.New("create_request: service not offered by provider")
	ErrIncompatibleVehicleType = errors.New("create_request: vehicle type not accepted for service")
	ErrInternal                = errors.New("create_request: internal error")
)
