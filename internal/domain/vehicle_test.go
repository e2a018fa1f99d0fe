package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePlate(t *testing.T) {
	valid := []string{"ABC123", "XYZ00A", "JKD45F", "AAA999"}
	for _, plate := range valid {
		assert.NoError(t, ValidatePlate(plate), "plate %s", plate)
	}

	invalid := []string{"", "AB123", "ABCD12", "abc123", "1BC123", "ABC1234"}
	for _, plate := range invalid {
		assert.Error(t, ValidatePlate(plate), "plate %s", plate)
	}
}

func TestPlateLastDigit(t *testing.T) {
	digit, err := PlateLastDigit("ABC123")
	require.NoError(t, err)
	assert.Equal(t, 3, digit)

	digit, err = PlateLastDigit("XYZ980")
	require.NoError(t, err)
	assert.Equal(t, 0, digit)

	// Motorcycle plates end in a letter and cannot be evaluated.
	_, err = PlateLastDigit("XYZ00A")
	require.ErrorIs(t, err, ErrPlateNotNumeric)

	_, err = PlateLastDigit("")
	require.ErrorIs(t, err, ErrInvalidPlate)
}

func TestValidateYear(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateYear(2020, now))
	assert.NoError(t, ValidateYear(MinVehicleYear, now))
	// Next model year is already on sale.
	assert.NoError(t, ValidateYear(2027, now))

	assert.ErrorIs(t, ValidateYear(1899, now), ErrInvalidYear)
	assert.ErrorIs(t, ValidateYear(2028, now), ErrInvalidYear)
}

func TestVehicleAgeYears(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 6, (&Vehicle{Year: 2020}).AgeYears(now))
	assert.Equal(t, 0, (&Vehicle{Year: 2026}).AgeYears(now))
	// A next-year model is not negative years old.
	assert.Equal(t, 0, (&Vehicle{Year: 2027}).AgeYears(now))
}
