package refund_payment

import (
	"context"

	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments/models"
)

type PaymentService interface {
	Refund(ctx context.Context, intentID string, req *models.RefundRequest) (*models.RefundResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
