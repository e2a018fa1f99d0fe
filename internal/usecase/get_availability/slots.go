package get_availability

import (
	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/pkg/types"
)

// generateSlots produces the 60-minute-aligned slot start times inside the
// working window. A slot is only emitted when a full hour fits before
// closing time. The bound is computed in minutes since midnight because
// AddMinutes wraps past midnight, which would never satisfy a string
// comparison against a late closing time.
func generateSlots(schedule domain.DaySchedule) ([]types.TimeString, error) {
	startMinutes, err := schedule.Start.Minutes()
	if err != nil {
		return nil, err
	}
	endMinutes, err := schedule.End.Minutes()
	if err != nil {
		return nil, err
	}

	slots := make([]types.TimeString, 0)

	current := schedule.Start
	for m := startMinutes; m+domain.SlotDurationMinutes <= endMinutes; m += domain.SlotDurationMinutes {
		slots = append(slots, current)

		current, err = current.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
	}

	return slots, nil
}

// filterOccupied drops slots whose start time falls inside an existing
// appointment window [start, start+duration). An appointment ending
// exactly at a slot start does not block that slot.
func filterOccupied(slots []types.TimeString, appointments []domain.Appointment) []types.TimeString {
	available := make([]types.TimeString, 0, len(slots))

	for _, slot := range slots {
		if !isOccupied(slot, appointments) {
			available = append(available, slot)
		}
	}

	return available
}

func isOccupied(slot types.TimeString, appointments []domain.Appointment) bool {
	for _, appt := range appointments {
		end, err := appt.StartTime.AddMinutes(appt.EffectiveDuration())
		if err != nil {
			// An appointment with an unreadable start time cannot block
			// anything.
			continue
		}
		if !slot.IsBefore(appt.StartTime) && slot.IsBefore(end) {
			return true
		}
	}
	return false
}
