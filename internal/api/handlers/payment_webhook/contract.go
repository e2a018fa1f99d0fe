package payment_webhook

import "context"

type PaymentService interface {
	HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
