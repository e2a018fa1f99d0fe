package domain

import "time"

// PaymentStatus represents the ledger status of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment is a ledger record mirroring a processor-side payment intent.
// The ID is the processor intent id, which doubles as the idempotency key
// for every event that references the payment.
type Payment struct {
	ID               string // processor intent id
	ServiceRequestID int64
	ProviderID       int64
	CustomerID       int64
	Amount           float64
	Currency         string
	Status           PaymentStatus
	RefundAmount     *float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PaymentEvent is a processor-reported event about a payment intent.
type PaymentEvent string

const (
	EventPaymentSucceeded PaymentEvent = "payment_intent.succeeded"
	EventPaymentFailed    PaymentEvent = "payment_intent.payment_failed"
	EventPaymentRefunded  PaymentEvent = "charge.refunded"
)

// ApplyPaymentEvent folds a processor event into the current ledger status.
// The function is pure and idempotent: applying the same terminal event any
// number of times, through the direct confirm path or the webhook path or
// both, converges on the same status. The second return value reports
// whether the status actually changed, so callers can skip side effects on
// replays.
//
// A refund outranks a success: once refunded, a late-arriving succeeded
// event must not resurrect the completed status.
func ApplyPaymentEvent(current PaymentStatus, event PaymentEvent) (PaymentStatus, bool) {
	switch event {
	case EventPaymentSucceeded:
		if current == PaymentRefunded || current == PaymentCompleted {
			return current, false
		}
		return PaymentCompleted, true

	case EventPaymentFailed:
		// A failure report cannot demote a payment that already succeeded.
		if current == PaymentPending {
			return PaymentFailed, true
		}
		return current, false

	case EventPaymentRefunded:
		if current == PaymentRefunded {
			return current, false
		}
		return PaymentRefunded, true

	default:
		return current, false
	}
}
