package payments

import (
	"context"
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/internal/integrations/paymentgateway"
)

// PaymentRepository persists the local payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error)
	SetStatus(ctx context.Context, intentID string, from, to domain.PaymentStatus) (bool, error)
	SetRefunded(ctx context.Context, intentID string, refundAmount float64) error
}

// RequestRepository reads and advances the linked service request.
type RequestRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	MarkPaid(ctx context.Context, id int64) error
	MarkRefunded(ctx context.Context, id int64) error
}

// GatewayClient talks to the external payment processor.
type GatewayClient interface {
	CreateIntent(ctx context.Context, amount int64, currency, description string, metadata map[string]string) (*paymentgateway.Intent, error)
	CreateRefund(ctx context.Context, intentID string, amount *int64, reason string) (*paymentgateway.Refund, error)
	VerifyWebhookSignature(payload []byte, sigHeader string, now time.Time) (*paymentgateway.WebhookEvent, error)
}

// OutboxRepository enqueues payment notifications.
type OutboxRepository interface {
	Enqueue(ctx context.Context, recipientType string, recipientID int64, title, body string) error
}

// TxManager runs a ledger transition and the request update in one
// transaction.
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
