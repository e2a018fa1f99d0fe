package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	providerRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/provider"
	"github.com/ruedapp/RuedApp-CoreService/pkg/types"
)

// UseCase computes the bookable slots for a provider on a date.
type UseCase struct {
	providerRepo    ProviderRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase creates the availability use case.
func NewUseCase(providerRepo ProviderRepository, appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		providerRepo:    providerRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute resolves the provider's working window for the date's weekday,
// generates the hourly slot grid and removes slots occupied by existing
// appointments. A day off yields an empty slot list, not an error.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProviderID <= 0 {
		return nil, fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailability: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailability: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	schedule := provider.WorkingHours.ForWeekday(req.Date.Weekday())
	if schedule == nil {
		uc.logger.Info("GetAvailability: provider id=%d is closed on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return &Response{
			ProviderID:     req.ProviderID,
			Date:           req.Date,
			Appointments:   []domain.Appointment{},
			AvailableSlots: []types.TimeString{},
		}, nil
	}

	appointments, err := uc.appointmentRepo.GetAppointmentsForDate(ctx, req.ProviderID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments for provider id=%d: %v",
			req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	allSlots, err := generateSlots(*schedule)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots for provider id=%d: %v",
			req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	available := filterOccupied(allSlots, appointments)

	uc.logger.Info("GetAvailability: provider=%d date=%s slots=%d available=%d",
		req.ProviderID, req.Date.Format(domain.DateFormat), len(allSlots), len(available))

	return &Response{
		ProviderID:     req.ProviderID,
		Date:           req.Date,
		WorkingHours:   schedule,
		Appointments:   appointments,
		AvailableSlots: available,
	}, nil
}
