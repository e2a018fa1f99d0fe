package get_availability

// WorkingHoursResponse is the provider's working window for the date.
type WorkingHoursResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AppointmentResponse is an occupied window on the provider's schedule.
type AppointmentResponse struct {
	StartTime       string `json:"start_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

// GetAvailabilityResponse is the bookable slot listing.
type GetAvailabilityResponse struct {
	Success              bool                  `json:"success"`
	ProviderID           int64                 `json:"provider_id"`
	Date                 string                `json:"date"`
	WorkingHours         *WorkingHoursResponse `json:"working_hours,omitempty"`
	ExistingAppointments []AppointmentResponse `json:"existing_appointments"`
	AvailableSlots       []string              `json:"available_slots"`
}
