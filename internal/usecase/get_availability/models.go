package get_availability

import (
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/pkg/types"
)

// Request asks for the bookable slots of a provider on a date.
type Request struct {
	ProviderID int64
	Date       time.Time
}

// Response carries the provider's day schedule, the appointments already
// occupying it and the remaining free slot start times.
type Response struct {
	ProviderID     int64
	Date           time.Time
	WorkingHours   *domain.DaySchedule
	Appointments   []domain.Appointment
	AvailableSlots []types.TimeString
}
