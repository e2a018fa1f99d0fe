package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to paid", StatusPending, StatusPaid, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to completed skips lifecycle", StatusPending, StatusCompleted, false},
		{"confirmed to in_progress", StatusConfirmed, StatusInProgress, true},
		{"paid to in_progress", StatusPaid, StatusInProgress, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"in_progress to cancelled", StatusInProgress, StatusCancelled, false},
		{"completed to refunded", StatusCompleted, StatusRefunded, true},
		{"completed to pending", StatusCompleted, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"refunded is terminal", StatusRefunded, StatusCompleted, false},
		{"same status is a no-op", StatusPaid, StatusPaid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestApplyTransitionStampsTimestamps(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	r := &ServiceRequest{Status: StatusInProgress}
	require.NoError(t, r.ApplyTransition(StatusCompleted, now))
	require.NotNil(t, r.CompletedAt)
	assert.Equal(t, now, *r.CompletedAt)

	r = &ServiceRequest{Status: StatusPending}
	require.NoError(t, r.ApplyTransition(StatusCancelled, now))
	require.NotNil(t, r.CancelledAt)
	assert.Equal(t, now, *r.CancelledAt)
}

func TestApplyTransitionRejectsIllegalEdge(t *testing.T) {
	r := &ServiceRequest{Status: StatusCompleted}
	err := r.ApplyTransition(StatusPending, time.Now())
	require.Error(t, err)
	assert.Equal(t, StatusCompleted, r.Status)
}

func TestApplyTransitionKeepsFirstTimestamp(t *testing.T) {
	first := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	r := &ServiceRequest{Status: StatusInProgress}
	require.NoError(t, r.ApplyTransition(StatusCompleted, first))
	require.NoError(t, r.ApplyTransition(StatusCompleted, later))
	assert.Equal(t, first, *r.CompletedAt)
}

func TestCanBeCancelled(t *testing.T) {
	cancellable := []RequestStatus{StatusPending, StatusConfirmed}
	for _, s := range cancellable {
		assert.True(t, (&ServiceRequest{Status: s}).CanBeCancelled(), "status %s", s)
	}

	notCancellable := []RequestStatus{StatusPaid, StatusInProgress, StatusCompleted, StatusCancelled, StatusRefunded}
	for _, s := range notCancellable {
		assert.False(t, (&ServiceRequest{Status: s}).CanBeCancelled(), "status %s", s)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, (&ServiceRequest{Status: StatusCancelled}).IsTerminal())
	assert.True(t, (&ServiceRequest{Status: StatusRefunded}).IsTerminal())
	assert.False(t, (&ServiceRequest{Status: StatusCompleted}).IsTerminal())
	assert.False(t, (&ServiceRequest{Status: StatusPending}).IsTerminal())
}

func TestParseRequestStatus(t *testing.T) {
	status, err := ParseRequestStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)

	_, err = ParseRequestStatus("finished")
	require.Error(t, err)
}
