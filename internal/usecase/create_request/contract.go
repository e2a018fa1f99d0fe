package create_request

import (
	"context"
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// VehicleRepository reads vehicles for ownership and compatibility checks.
type VehicleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

// ProviderRepository reads providers and their service catalog.
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
	GetProviderService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error)
}

// RequestRepository persists new service requests.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error)
}

// OutboxRepository enqueues notifications atomically with the request.
type OutboxRepository interface {
	Enqueue(ctx context.Context, recipientType string, recipientID int64, title, body string) error
}

// TxManager runs the insert and the outbox enqueue in one transaction.
type TxManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
