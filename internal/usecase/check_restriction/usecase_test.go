package check_restriction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase() *UseCase {
	return NewUseCase(domain.DefaultRestrictionCalendar(), noopLogger{})
}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestExecuteMonday(t *testing.T) {
	uc := newTestUseCase()

	restricted, err := uc.Execute(context.Background(), &Request{Plate: "ABC120", Date: monday})
	require.NoError(t, err)
	assert.True(t, restricted.Restricted)
	assert.Equal(t, 0, restricted.LastDigit)
	require.Len(t, restricted.Windows, 2)
	assert.Equal(t, "06:00", string(restricted.Windows[0].Start))
	assert.Equal(t, "19:30", string(restricted.Windows[1].End))

	free, err := uc.Execute(context.Background(), &Request{Plate: "ABC125", Date: monday})
	require.NoError(t, err)
	assert.False(t, free.Restricted)
	assert.Empty(t, free.Windows)
}

// Every final digit is restricted on exactly one weekday under the
// default rotation, and never on weekends.
func TestExecuteDigitPartition(t *testing.T) {
	uc := newTestUseCase()

	for digit := 0; digit <= 9; digit++ {
		plate := fmt.Sprintf("ABC12%d", digit)
		restrictedDays := 0

		for offset := 0; offset < 7; offset++ {
			date := monday.AddDate(0, 0, offset)
			result, err := uc.Execute(context.Background(), &Request{Plate: plate, Date: date})
			require.NoError(t, err)

			if result.Restricted {
				restrictedDays++
				assert.NotEqual(t, time.Saturday, date.Weekday())
				assert.NotEqual(t, time.Sunday, date.Weekday())
			}
		}

		assert.Equal(t, 1, restrictedDays, "digit %d", digit)
	}
}

func TestExecuteNormalizesPlate(t *testing.T) {
	uc := newTestUseCase()

	result, err := uc.Execute(context.Background(), &Request{Plate: "  abc121 ", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, "ABC121", result.Plate)
	assert.True(t, result.Restricted)
}

func TestExecuteRejectsLetterPlate(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{Plate: "ABC12F", Date: monday})
	require.ErrorIs(t, err, ErrInvalidPlate)
}

func TestExecuteRejectsMissingInput(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.Execute(context.Background(), &Request{Plate: "", Date: monday})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Plate: "ABC123"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteEmptyCalendarNeverRestricts(t *testing.T) {
	uc := NewUseCase(domain.NewRestrictionCalendar(nil), noopLogger{})

	for offset := 0; offset < 7; offset++ {
		result, err := uc.Execute(context.Background(), &Request{
			Plate: "ABC123",
			Date:  monday.AddDate(0, 0, offset),
		})
		require.NoError(t, err)
		assert.False(t, result.Restricted)
	}
}
