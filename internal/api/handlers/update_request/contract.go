package update_request

import (
	"context"

	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"
)

type RequestService interface {
	Update(ctx context.Context, requestID int64, req *models.UpdateRequest) (*models.RequestResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
