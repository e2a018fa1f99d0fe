package check_restriction

import (
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// Request asks whether a plate may circulate on a date.
type Request struct {
	Plate string
	Date  time.Time
}

// Response is the Pico y Placa verdict.
type Response struct {
	Plate      string
	Date       time.Time
	LastDigit  int
	Restricted bool
	Windows    []domain.TimeRange
}
