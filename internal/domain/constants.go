package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Slot policy: bookable slots are aligned to fixed 60-minute steps; an
// appointment without an explicit duration occupies one full slot.
const (
	SlotDurationMinutes       = 60
	DefaultAppointmentMinutes = 60
)

// Age surcharge policy: 5% of the base price per year over the threshold,
// clamped so the surcharge never exceeds 50% of the base price.
const (
	AgeSurchargeThresholdYears = 10
	AgeSurchargeRatePerYear    = 0.05
	AgeSurchargeMaxYears       = 10
)

// Vehicle validation constants
const (
	MinVehicleYear = 1900
)

// Payment constants
const (
	// AmountTolerance is the accepted rounding gap (in currency units)
	// between a requested payment amount and the stored request total.
	AmountTolerance = 1.0

	DefaultCurrency = "cop"
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxSearchRadiusKm           = 100.0
	DefaultSearchRadiusKm       = 10.0
	DefaultSearchLimit          = 20
	MaxSearchLimit              = 50
)
