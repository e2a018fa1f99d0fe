package calculate_price

// CalculatePriceRequest identifies the provider service to quote.
type CalculatePriceRequest struct {
	ProviderID int64  `json:"provider_id"`
	ServiceID  int64  `json:"service_id"`
	VehicleID  *int64 `json:"vehicle_id,omitempty"`
}

// PriceBreakdownResponse itemizes the quote.
type PriceBreakdownResponse struct {
	BasePrice       float64 `json:"base_price"`
	VehicleModifier float64 `json:"vehicle_modifier"`
	AgeModifier     float64 `json:"age_modifier"`
	Total           float64 `json:"total"`
}

// CalculatePriceResponse is the priced quote.
type CalculatePriceResponse struct {
	Success           bool                   `json:"success"`
	ServiceName       string                 `json:"service_name"`
	EstimatedDuration int                    `json:"estimated_duration"`
	PriceBreakdown    PriceBreakdownResponse `json:"price_breakdown"`
	FinalPrice        float64                `json:"final_price"`
}
