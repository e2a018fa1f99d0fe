package check_restriction

import "errors"

var (
	// ErrInvalidPlate is returned when the plate does not end in a digit
	// or fails the plate grammar.
	ErrInvalidPlate = errors.New("check_restriction: invalid license plate")

	// ErrInvalidInput is returned on malformed request data.
	ErrInvalidInput = errors.New("check_restriction: invalid input data")
)
