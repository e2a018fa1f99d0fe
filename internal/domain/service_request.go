package domain

import (
	"fmt"
	"time"
)

// RequestStatus represents the lifecycle status of a service request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusConfirmed  RequestStatus = "confirmed"
	StatusPaid       RequestStatus = "paid"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
	StatusRefunded   RequestStatus = "refunded"
)

// AllowedTransitions is the directed graph of legal status changes.
// "paid" is reached from the payment side-channel; "refunded" only after
// completion. Terminal states have no exits.
var AllowedTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:    {StatusConfirmed, StatusPaid, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusPaid, StatusCancelled},
	StatusPaid:       {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
	StatusCompleted:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// ParseRequestStatus validates a raw status string.
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(s)
	if _, ok := AllowedTransitions[status]; !ok {
		return "", fmt.Errorf("unknown request status %q", s)
	}
	return status, nil
}

// CanTransition reports whether from -> to is a legal status change.
// A same-status transition is treated as a no-op and is always allowed,
// which keeps repeated payment events idempotent.
func CanTransition(from, to RequestStatus) bool {
	if from == to {
		return true
	}
	allowed, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// ServiceRequest represents a user's request for an automotive service.
type ServiceRequest struct {
	ID         int64
	UserID     int64
	ProviderID int64
	VehicleID  int64
	ServiceID  int64
	Status     RequestStatus

	EstimatedAmount float64
	TotalAmount     float64

	ScheduledDate *time.Time

	// Optional location snapshot taken at request time.
	LocationLat     *float64
	LocationLng     *float64
	LocationAddress *string

	Notes              *string
	ProviderNotes      *string
	CompletionNotes    *string
	CancellationReason *string

	CompletedAt *time.Time
	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ApplyTransition moves the request to the target status, maintaining the
// lifecycle timestamps. Callers must handle the error when the transition
// is not in AllowedTransitions.
func (r *ServiceRequest) ApplyTransition(to RequestStatus, now time.Time) error {
	if !CanTransition(r.Status, to) {
		return fmt.Errorf("invalid request status transition: %s -> %s", r.Status, to)
	}

	r.Status = to

	switch to {
	case StatusCompleted:
		if r.CompletedAt == nil {
			t := now
			r.CompletedAt = &t
		}
	case StatusCancelled:
		if r.CancelledAt == nil {
			t := now
			r.CancelledAt = &t
		}
	}
	return nil
}

// CanBeCancelled reports whether the request is still in a cancellable state.
func (r *ServiceRequest) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal reports whether the request reached a final state.
func (r *ServiceRequest) IsTerminal() bool {
	return len(AllowedTransitions[r.Status]) == 0
}

// RequestFilter narrows service request listings.
type RequestFilter struct {
	ProviderID    *int64
	ScheduledDate *time.Time
	Status        *RequestStatus
	ActiveOnly    bool // exclude cancelled and refunded requests
}

// InactiveStatuses are excluded when counting occupied appointment slots.
var InactiveStatuses = []RequestStatus{
	StatusCancelled,
	StatusRefunded,
}
