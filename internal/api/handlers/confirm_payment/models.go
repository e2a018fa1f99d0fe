package confirm_payment

// ConfirmPaymentRequest links the confirmation to its service request.
type ConfirmPaymentRequest struct {
	ServiceRequestID int64 `json:"service_request_id"`
}

// ConfirmPaymentResponse reports the ledger status after confirmation.
type ConfirmPaymentResponse struct {
	Success  bool   `json:"success"`
	IntentID string `json:"intent_id"`
	Status   string `json:"status"`
}
