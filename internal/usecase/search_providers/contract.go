package search_providers

import (
	"context"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// ProviderRepository lists candidate providers.
type ProviderRepository interface {
	ListActive(ctx context.Context, serviceID, vehicleTypeID *int64) ([]*domain.Provider, error)
}

// Logger is the logging surface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
