package get_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/pkg/types"
)

func schedule(start, end string) domain.DaySchedule {
	return domain.DaySchedule{
		Start: types.TimeString(start),
		End:   types.TimeString(end),
	}
}

func appointment(start string, minutes int) domain.Appointment {
	return domain.Appointment{
		StartTime:       types.TimeString(start),
		DurationMinutes: minutes,
	}
}

func asStrings(slots []types.TimeString) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, string(s))
	}
	return out
}

func TestGenerateSlots(t *testing.T) {
	slots, err := generateSlots(schedule("09:00", "18:00"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "12:00", "13:00",
		"14:00", "15:00", "16:00", "17:00",
	}, asStrings(slots))
}

// A trailing partial hour never becomes a slot.
func TestGenerateSlotsPartialTrailingWindow(t *testing.T) {
	slots, err := generateSlots(schedule("09:00", "17:30"))
	require.NoError(t, err)
	assert.Equal(t, "16:00", string(slots[len(slots)-1]))
}

// Closing times past 23:00 must terminate the grid instead of wrapping
// around midnight and cycling forever.
func TestGenerateSlotsLateClosing(t *testing.T) {
	slots, err := generateSlots(schedule("21:00", "23:30"))
	require.NoError(t, err)
	assert.Equal(t, []string{"21:00", "22:00"}, asStrings(slots))

	slots, err = generateSlots(schedule("22:00", "23:59"))
	require.NoError(t, err)
	assert.Equal(t, []string{"22:00"}, asStrings(slots))
}

func TestGenerateSlotsWindowShorterThanSlot(t *testing.T) {
	slots, err := generateSlots(schedule("09:00", "09:30"))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFilterOccupied(t *testing.T) {
	all, err := generateSlots(schedule("09:00", "14:00"))
	require.NoError(t, err)

	tests := []struct {
		name         string
		appointments []domain.Appointment
		want         []string
	}{
		{
			name:         "no appointments",
			appointments: nil,
			want:         []string{"09:00", "10:00", "11:00", "12:00", "13:00"},
		},
		{
			name:         "one-hour appointment blocks exactly its slot",
			appointments: []domain.Appointment{appointment("10:00", 60)},
			want:         []string{"09:00", "11:00", "12:00", "13:00"},
		},
		{
			name:         "two-hour appointment blocks two slots",
			appointments: []domain.Appointment{appointment("10:00", 120)},
			want:         []string{"09:00", "12:00", "13:00"},
		},
		{
			// Occupancy is start-containment: 09:00 starts before the
			// appointment and 10:00 starts exactly when it ends.
			name:         "appointment ending at a slot start does not block it",
			appointments: []domain.Appointment{appointment("09:30", 30)},
			want:         []string{"09:00", "10:00", "11:00", "12:00", "13:00"},
		},
		{
			name: "overlapping appointments",
			appointments: []domain.Appointment{
				appointment("09:00", 90),
				appointment("10:30", 60),
			},
			want: []string{"12:00", "13:00"},
		},
		{
			name:         "unreadable start time blocks nothing",
			appointments: []domain.Appointment{appointment("later", 60)},
			want:         []string{"09:00", "10:00", "11:00", "12:00", "13:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, asStrings(filterOccupied(all, tt.appointments)))
		})
	}
}

// Appointments without a catalog duration occupy the default hour.
func TestFilterOccupiedDefaultDuration(t *testing.T) {
	all, err := generateSlots(schedule("09:00", "12:00"))
	require.NoError(t, err)

	got := filterOccupied(all, []domain.Appointment{appointment("10:00", 0)})
	assert.Equal(t, []string{"09:00", "11:00"}, asStrings(got))
}
