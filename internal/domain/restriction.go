package domain

import (
	"time"

	"github.com/ruedapp/RuedApp-CoreService/pkg/types"
)

// TimeRange is a restriction window within a day.
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// RestrictionRule is the Pico y Placa rule for one weekday: plates whose
// final digit is in Digits may not circulate during Windows.
type RestrictionRule struct {
	Digits  []int
	Windows []TimeRange
}

// Restricts reports whether the rule bans the given final plate digit.
func (r RestrictionRule) Restricts(digit int) bool {
	for _, d := range r.Digits {
		if d == digit {
			return true
		}
	}
	return false
}

// RestrictionCalendar is an immutable weekly Pico y Placa rule table.
// It is injected into the evaluator rather than read from a global so a
// per-city table can be swapped in without touching the evaluation logic.
type RestrictionCalendar struct {
	rules map[time.Weekday]RestrictionRule
}

// NewRestrictionCalendar builds a calendar from a weekday rule table.
// Weekdays absent from the table carry no restriction.
func NewRestrictionCalendar(rules map[time.Weekday]RestrictionRule) RestrictionCalendar {
	copied := make(map[time.Weekday]RestrictionRule, len(rules))
	for day, rule := range rules {
		copied[day] = rule
	}
	return RestrictionCalendar{rules: copied}
}

// RuleFor returns the rule for a weekday; the zero rule means no restriction.
func (c RestrictionCalendar) RuleFor(day time.Weekday) RestrictionRule {
	return c.rules[day]
}

// bogotaWindows are the standard weekday restriction windows.
var bogotaWindows = []TimeRange{
	{Start: "06:00", End: "08:30"},
	{Start: "15:00", End: "19:30"},
}

// DefaultRestrictionCalendar is the current Bogotá rotation: each weekday
// bans two final digits, partitioning 0-9 across Monday-Friday; weekends
// are unrestricted. Policy data, revised by decree roughly once a year.
func DefaultRestrictionCalendar() RestrictionCalendar {
	return NewRestrictionCalendar(map[time.Weekday]RestrictionRule{
		time.Monday:    {Digits: []int{0, 1}, Windows: bogotaWindows},
		time.Tuesday:   {Digits: []int{2, 3}, Windows: bogotaWindows},
		time.Wednesday: {Digits: []int{4, 5}, Windows: bogotaWindows},
		time.Thursday:  {Digits: []int{6, 7}, Windows: bogotaWindows},
		time.Friday:    {Digits: []int{8, 9}, Windows: bogotaWindows},
	})
}
