package calculate_price

// Request identifies the provider service to price, optionally adjusted
// for a concrete vehicle.
type Request struct {
	ProviderID int64
	ServiceID  int64
	VehicleID  *int64
}

// PriceBreakdown itemizes how the final price was composed.
type PriceBreakdown struct {
	BasePrice       float64
	VehicleModifier float64
	AgeModifier     float64
	Total           float64
}

// Response is the priced service quote.
type Response struct {
	ServiceName              string
	EstimatedDurationMinutes int
	Breakdown                PriceBreakdown
	FinalPrice               float64
}
