package update_request

import "github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"

// UpdateRequestResponse wraps the updated request.
type UpdateRequestResponse struct {
	Success        bool                    `json:"success"`
	ServiceRequest *models.RequestResponse `json:"service_request"`
	Message        string                  `json:"message"`
}
