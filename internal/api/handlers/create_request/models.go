package create_request

import (
	"fmt"
	"time"

	createRequest "github.com/ruedapp/RuedApp-CoreService/internal/usecase/create_request"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"
)

// LocationPayload is the optional location snapshot taken at request time.
type LocationPayload struct {
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Address *string  `json:"address,omitempty"`
}

// CreateRequestRequest opens a new service request.
type CreateRequestRequest struct {
	ProviderID    int64            `json:"provider_id"`
	VehicleID     int64            `json:"vehicle_id"`
	ServiceID     int64            `json:"service_id"`
	ScheduledDate *string          `json:"scheduled_date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	Location      *LocationPayload `json:"location,omitempty"`
}

// ToUseCaseRequest converts the payload, parsing the scheduled date.
func (r *CreateRequestRequest) ToUseCaseRequest(userID int64) (*createRequest.Request, error) {
	req := &createRequest.Request{
		UserID:     userID,
		ProviderID: r.ProviderID,
		VehicleID:  r.VehicleID,
		ServiceID:  r.ServiceID,
		Notes:      r.Notes,
	}

	if r.ScheduledDate != nil && *r.ScheduledDate != "" {
		parsed, err := time.Parse(time.RFC3339, *r.ScheduledDate)
		if err != nil {
			return nil, fmt.Errorf("parse scheduled date: %w", err)
		}
		req.ScheduledDate = &parsed
	}

	if r.Location != nil {
		req.LocationLat = r.Location.Lat
		req.LocationLng = r.Location.Lng
		req.LocationAddress = r.Location.Address
	}

	return req, nil
}

// CreateRequestResponse wraps the created request.
type CreateRequestResponse struct {
	Success        bool                    `json:"success"`
	ServiceRequest *models.RequestResponse `json:"service_request"`
	Message        string                  `json:"message"`
}
