package domain

import (
	"time"

	"github.com/ruedapp/RuedApp-CoreService/pkg/types"
)

// Provider represents a service business (repair shop, car wash, ...).
type Provider struct {
	ID           int64
	BusinessName string
	Latitude     *float64
	Longitude    *float64
	Rating       float64
	TotalReviews int
	IsActive     bool
	WorkingHours WeeklyHours
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasLocation reports whether the provider carries usable coordinates.
// Providers without coordinates are excluded from distance search rather
// than treated as an error (data-quality filter).
func (p *Provider) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// DaySchedule is the working window for a single weekday.
type DaySchedule struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklyHours maps each weekday to an optional working window; a nil entry
// means the provider does not work that day.
type WeeklyHours struct {
	Monday    *DaySchedule `json:"monday,omitempty"`
	Tuesday   *DaySchedule `json:"tuesday,omitempty"`
	Wednesday *DaySchedule `json:"wednesday,omitempty"`
	Thursday  *DaySchedule `json:"thursday,omitempty"`
	Friday    *DaySchedule `json:"friday,omitempty"`
	Saturday  *DaySchedule `json:"saturday,omitempty"`
	Sunday    *DaySchedule `json:"sunday,omitempty"`
}

// ForWeekday returns the schedule for the given weekday, nil when off.
func (w WeeklyHours) ForWeekday(day time.Weekday) *DaySchedule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return nil
	}
}

// ProviderService is a service offered by a provider at a fixed price.
type ProviderService struct {
	ProviderID               int64
	ServiceID                int64
	ServiceName              string
	Price                    float64
	EstimatedDurationMinutes int
	// RequiredVehicleTypeID restricts the service to one vehicle class
	// when set (e.g. motorcycle-only wash bay).
	RequiredVehicleTypeID *int64
}

// CompatibleWith reports whether a vehicle of the given type may book
// this service.
func (ps *ProviderService) CompatibleWith(vehicleTypeID int64) bool {
	return ps.RequiredVehicleTypeID == nil || *ps.RequiredVehicleTypeID == vehicleTypeID
}

// Appointment is an occupied time window on a provider's schedule.
type Appointment struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EffectiveDuration applies the default when the duration is unset.
func (a Appointment) EffectiveDuration() int {
	if a.DurationMinutes <= 0 {
		return DefaultAppointmentMinutes
	}
	return a.DurationMinutes
}
