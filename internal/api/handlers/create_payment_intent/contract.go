package create_payment_intent

import (
	"context"

	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments/models"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, req *models.CreateIntentRequest) (*models.CreateIntentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
