package models

// Request models

// CreateIntentRequest asks the processor for a new payment intent.
type CreateIntentRequest struct {
	CustomerID       int64    `json:"customer_id"`
	ServiceRequestID int64    `json:"service_request_id"`
	ProviderID       int64    `json:"provider_id"`
	Amount           float64  `json:"amount"`
	Description      *string  `json:"description,omitempty"`
}

// ConfirmRequest confirms an intent against its service request.
type ConfirmRequest struct {
	ServiceRequestID int64 `json:"service_request_id"`
}

// RefundRequest refunds an intent, fully when Amount is nil.
type RefundRequest struct {
	ServiceRequestID int64    `json:"service_request_id"`
	Amount           *float64 `json:"amount,omitempty"`
	Reason           *string  `json:"reason,omitempty"`
}

// Response models

// CreateIntentResponse returns the processor handle for the client SDK.
type CreateIntentResponse struct {
	IntentID     string `json:"intent_id"`
	ClientSecret string `json:"client_secret"`
}

// ConfirmResponse reports the ledger status after confirmation.
type ConfirmResponse struct {
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}

// RefundResponse reports the processor refund.
type RefundResponse struct {
	RefundID string  `json:"refund_id"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}
