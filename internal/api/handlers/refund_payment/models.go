package refund_payment

// RefundPaymentRequest refunds an intent, fully when amount is omitted.
type RefundPaymentRequest struct {
	ServiceRequestID int64    `json:"service_request_id"`
	Amount           *float64 `json:"amount,omitempty"`
	Reason           *string  `json:"reason,omitempty"`
}

// RefundPaymentResponse reports the processor refund.
type RefundPaymentResponse struct {
	Success  bool    `json:"success"`
	RefundID string  `json:"refund_id"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}
