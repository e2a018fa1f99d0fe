package cancel_request

import "github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"

// CancelRequestRequest carries the optional cancellation reason.
type CancelRequestRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelRequestResponse wraps the cancelled request.
type CancelRequestResponse struct {
	Success        bool                    `json:"success"`
	ServiceRequest *models.RequestResponse `json:"service_request"`
	Message        string                  `json:"message"`
}
