package create_request

import (
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// Request carries everything needed to open a service request. UserID comes
// from the authenticated session, never from the payload.
type Request struct {
	UserID     int64
	ProviderID int64
	VehicleID  int64
	ServiceID  int64

	ScheduledDate *time.Time

	LocationLat     *float64
	LocationLng     *float64
	LocationAddress *string

	Notes *string
}

// Response returns the created request together with the quoted service.
type Response struct {
	Request     *domain.ServiceRequest
	ServiceName string
}
