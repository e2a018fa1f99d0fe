package check_restriction

import (
	"context"
	"fmt"
	"strings"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

// UseCase evaluates a license plate against the Pico y Placa calendar.
// The calendar is injected so per-city rule tables can be swapped without
// touching the evaluation logic.
type UseCase struct {
	calendar domain.RestrictionCalendar
	logger   Logger
}

// NewUseCase creates the restriction evaluator.
func NewUseCase(calendar domain.RestrictionCalendar, logger Logger) *UseCase {
	return &UseCase{
		calendar: calendar,
		logger:   logger,
	}
}

// Execute resolves the rule for the date's weekday and checks the final
// plate digit against it. Pure apart from logging: same plate, date and
// calendar always yield the same verdict.
func (uc *UseCase) Execute(_ context.Context, req *Request) (*Response, error) {
	plate := strings.ToUpper(strings.TrimSpace(req.Plate))

	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	digit, err := domain.PlateLastDigit(plate)
	if err != nil {
		uc.logger.Warn("CheckRestriction: plate %q has no final digit", plate)
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlate, err)
	}

	rule := uc.calendar.RuleFor(req.Date.Weekday())
	restricted := rule.Restricts(digit)

	windows := []domain.TimeRange{}
	if restricted {
		windows = rule.Windows
	}

	uc.logger.Info("CheckRestriction: plate=%s date=%s digit=%d restricted=%t",
		plate, req.Date.Format(domain.DateFormat), digit, restricted)

	return &Response{
		Plate:      plate,
		Date:       req.Date,
		LastDigit:  digit,
		Restricted: restricted,
		Windows:    windows,
	}, nil
}
