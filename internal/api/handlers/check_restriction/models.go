package check_restriction

// TimeWindowResponse is a restricted circulation window.
type TimeWindowResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CheckRestrictionResponse is the Pico y Placa verdict.
type CheckRestrictionResponse struct {
	Success           bool                 `json:"success"`
	Plate             string               `json:"plate"`
	Date              string               `json:"date"`
	LastDigit         int                  `json:"last_digit"`
	Restricted        bool                 `json:"restricted"`
	RestrictedWindows []TimeWindowResponse `json:"restricted_windows"`
}
