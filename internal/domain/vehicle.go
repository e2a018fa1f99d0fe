package domain

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrInvalidPlate is returned when a plate does not match the grammar.
	ErrInvalidPlate = errors.New("invalid license plate")

	// ErrInvalidYear is returned when a model year is out of range.
	ErrInvalidYear = errors.New("vehicle year out of range")

	// ErrPlateNotNumeric is returned when the final plate character is not
	// a digit and the plate cannot be matched against restriction rules.
	ErrPlateNotNumeric = errors.New("license plate does not end in a digit")
)

// platePattern is the Colombian plate grammar: three letters, two digits and
// a final alphanumeric character (letter for motorcycles, digit for cars).
var platePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{2}[A-Z0-9]$`)

// Vehicle represents a registered vehicle owned by a user.
type Vehicle struct {
	ID            int64
	OwnerID       int64
	LicensePlate  string
	VehicleTypeID int64
	Brand         string
	Model         string
	Year          int
	Color         string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidatePlate checks the plate against the Colombian grammar.
func ValidatePlate(plate string) error {
	if !platePattern.MatchString(plate) {
		return fmt.Errorf("%w: %q", ErrInvalidPlate, plate)
	}
	return nil
}

// ValidateYear checks the model year against the accepted range
// (1900 up to next year).
func ValidateYear(year int, now time.Time) error {
	if year < MinVehicleYear || year > now.Year()+1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	return nil
}

// PlateLastDigit extracts the final plate character as a digit. Plates
// ending in a letter cannot be evaluated against digit-based restrictions.
func PlateLastDigit(plate string) (int, error) {
	if plate == "" {
		return 0, fmt.Errorf("%w: empty plate", ErrInvalidPlate)
	}
	last := plate[len(plate)-1]
	if last < '0' || last > '9' {
		return 0, fmt.Errorf("%w: %q", ErrPlateNotNumeric, plate)
	}
	return int(last - '0'), nil
}

// AgeYears returns the vehicle age in whole years relative to now.
func (v *Vehicle) AgeYears(now time.Time) int {
	age := now.Year() - v.Year
	if age < 0 {
		return 0
	}
	return age
}
