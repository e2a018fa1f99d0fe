package confirm_payment

import (
	"context"

	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments/models"
)

type PaymentService interface {
	Confirm(ctx context.Context, intentID string, req *models.ConfirmRequest) (*models.ConfirmResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
