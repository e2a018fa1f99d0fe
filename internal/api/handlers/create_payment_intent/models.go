package create_payment_intent

// CreateIntentRequest asks the processor for a payment intent.
type CreateIntentRequest struct {
	ServiceRequestID int64   `json:"service_request_id"`
	ProviderID       int64   `json:"provider_id"`
	Amount           float64 `json:"amount"`
	Description      *string `json:"description,omitempty"`
}

// CreateIntentResponse returns the processor handle for the client SDK.
type CreateIntentResponse struct {
	Success      bool   `json:"success"`
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
}
