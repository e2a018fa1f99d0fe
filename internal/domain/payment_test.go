package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyPaymentEvent(t *testing.T) {
	tests := []struct {
		name        string
		current     PaymentStatus
		event       PaymentEvent
		want        PaymentStatus
		wantChanged bool
	}{
		{"success completes pending", PaymentPending, EventPaymentSucceeded, PaymentCompleted, true},
		{"success replay is a no-op", PaymentCompleted, EventPaymentSucceeded, PaymentCompleted, false},
		{"success after refund does not resurrect", PaymentRefunded, EventPaymentSucceeded, PaymentRefunded, false},
		{"success recovers a failed payment", PaymentFailed, EventPaymentSucceeded, PaymentCompleted, true},
		{"failure fails pending", PaymentPending, EventPaymentFailed, PaymentFailed, true},
		{"failure cannot demote completed", PaymentCompleted, EventPaymentFailed, PaymentCompleted, false},
		{"failure replay is a no-op", PaymentFailed, EventPaymentFailed, PaymentFailed, false},
		{"refund refunds completed", PaymentCompleted, EventPaymentRefunded, PaymentRefunded, true},
		{"refund replay is a no-op", PaymentRefunded, EventPaymentRefunded, PaymentRefunded, false},
		{"unknown event is ignored", PaymentPending, PaymentEvent("invoice.created"), PaymentPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := ApplyPaymentEvent(tt.current, tt.event)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

// Applying the same terminal event any number of times, in any
// interleaving of confirm and webhook, must converge on one state.
func TestApplyPaymentEventIdempotentUnderReplay(t *testing.T) {
	status := PaymentPending

	for i := 0; i < 3; i++ {
		status, _ = ApplyPaymentEvent(status, EventPaymentSucceeded)
	}
	assert.Equal(t, PaymentCompleted, status)

	for i := 0; i < 3; i++ {
		status, _ = ApplyPaymentEvent(status, EventPaymentRefunded)
	}
	assert.Equal(t, PaymentRefunded, status)

	// Late-arriving success after the refund settled.
	status, changed := ApplyPaymentEvent(status, EventPaymentSucceeded)
	assert.Equal(t, PaymentRefunded, status)
	assert.False(t, changed)
}
