package models

import (
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// Request models

// UpdateRequest mutates a service request; all fields optional.
type UpdateRequest struct {
	Status          *string  `json:"status,omitempty"`
	ProviderNotes   *string  `json:"provider_notes,omitempty"`
	CompletionNotes *string  `json:"completion_notes,omitempty"`
	ActualAmount    *float64 `json:"actual_amount,omitempty"`
}

// CancelRequest cancels a service request on behalf of its owner.
type CancelRequest struct {
	UserID int64   `json:"user_id"`
	Reason *string `json:"reason,omitempty"`
}

// GetUserRequestsRequest lists a user's requests, optionally by status.
type GetUserRequestsRequest struct {
	UserID int64   `json:"user_id"`
	Status *string `json:"status,omitempty"`
}

// Response models

// RequestResponse is the canonical wire shape of a service request.
type RequestResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"user_id"`
	ProviderID      int64   `json:"provider_id"`
	VehicleID       int64   `json:"vehicle_id"`
	ServiceID       int64   `json:"service_id"`
	Status          string  `json:"status"`
	EstimatedAmount float64 `json:"estimated_amount"`
	TotalAmount     float64 `json:"total_amount"`

	ScheduledDate *string `json:"scheduled_date,omitempty"`

	LocationLat     *float64 `json:"location_lat,omitempty"`
	LocationLng     *float64 `json:"location_lng,omitempty"`
	LocationAddress *string  `json:"location_address,omitempty"`

	Notes              *string `json:"notes,omitempty"`
	ProviderNotes      *string `json:"provider_notes,omitempty"`
	CompletionNotes    *string `json:"completion_notes,omitempty"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`

	CompletedAt *string `json:"completed_at,omitempty"`
	CancelledAt *string `json:"cancelled_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// RequestListResponse wraps a request listing.
type RequestListResponse struct {
	Requests []*RequestResponse `json:"requests"`
	Total    int                `json:"total"`
}

// FromDomainRequest converts a domain request to its wire shape.
func FromDomainRequest(r *domain.ServiceRequest) *RequestResponse {
	return &RequestResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		ProviderID:         r.ProviderID,
		VehicleID:          r.VehicleID,
		ServiceID:          r.ServiceID,
		Status:             string(r.Status),
		EstimatedAmount:    r.EstimatedAmount,
		TotalAmount:        r.TotalAmount,
		ScheduledDate:      formatTimePtr(r.ScheduledDate, time.RFC3339),
		LocationLat:        r.LocationLat,
		LocationLng:        r.LocationLng,
		LocationAddress:    r.LocationAddress,
		Notes:              r.Notes,
		ProviderNotes:      r.ProviderNotes,
		CompletionNotes:    r.CompletionNotes,
		CancellationReason: r.CancellationReason,
		CompletedAt:        formatTimePtr(r.CompletedAt, time.RFC3339),
		CancelledAt:        formatTimePtr(r.CancelledAt, time.RFC3339),
		CreatedAt:          r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainRequestList converts a domain request slice to its wire shape.
func FromDomainRequestList(list []*domain.ServiceRequest) *RequestListResponse {
	responses := make([]*RequestResponse, 0, len(list))
	for _, r := range list {
		responses = append(responses, FromDomainRequest(r))
	}
	return &RequestListResponse{
		Requests: responses,
		Total:    len(responses),
	}
}

func formatTimePtr(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
