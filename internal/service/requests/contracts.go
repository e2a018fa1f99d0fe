package requests

import (
	"context"
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// RequestRepository persists service requests.
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.RequestStatus) ([]*domain.ServiceRequest, error)
	Update(ctx context.Context, req *domain.ServiceRequest) error
}

// OutboxRepository enqueues notifications atomically with the transition.
type OutboxRepository interface {
	Enqueue(ctx context.Context, recipientType string, recipientID int64, title, body string) error
}

// TxManager runs a status change and its notification in one transaction.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the service needs.
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
