package calculate_price

import (
	"context"
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// ProviderRepository reads the provider's service catalog.
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetProviderService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error)
}

// VehicleRepository reads vehicles for type and age lookups.
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
