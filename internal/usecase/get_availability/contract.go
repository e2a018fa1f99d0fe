package get_availability

import (
	"context"
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// ProviderRepository reads providers and their working hours.
type ProviderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Provider, error)
}

// AppointmentRepository lists the occupied windows of a provider's day.
type AppointmentRepository interface {
	GetAppointmentsForDate(ctx context.Context, providerID int64, date time.Time) ([]domain.Appointment, error)
}

// Logger is the logging surface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
