package create_request

import (
	"fmt"
	"time"
)

func validateRequest(req *Request, now time.Time) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}
	if req.VehicleID <= 0 {
		return fmt.Errorf("%w: vehicleID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.ScheduledDate != nil && req.ScheduledDate.Before(now) {
		return fmt.Errorf("%w: scheduled date is in the past", ErrInvalidInput)
	}
	if (req.LocationLat == nil) != (req.LocationLng == nil) {
		return fmt.Errorf("%w: latitude and longitude must be provided together", ErrInvalidInput)
	}
	return nil
}
