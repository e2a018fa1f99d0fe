// Package outboxdispatcher drains the notification outbox. Transitions
// enqueue messages in the same transaction that commits them; this worker
// delivers them afterwards, so a push-gateway outage never blocks or rolls
// back a state change.
package outboxdispatcher

import (
	"context"
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/outbox"
	"github.com/ruedapp/RuedApp-CoreService/internal/integrations/pushgateway"
)

// OutboxRepository reads and settles pending messages.
type OutboxRepository interface {
	ListPending(ctx context.Context, limit int) ([]*outbox.Message, error)
	MarkSent(ctx context.Context, id string) error
	MarkAttemptFailed(ctx context.Context, id string, maxAttempts int) error
}

// PushClient delivers notifications.
type PushClient interface {
	Send(ctx context.Context, n pushgateway.Notification) error
}

// TxManager wraps a poll cycle so ListPending can lock rows with
// SKIP LOCKED against concurrent dispatcher instances.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging surface the dispatcher needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Dispatcher polls the outbox on a ticker and pushes pending messages.
type Dispatcher struct {
	outboxRepo  OutboxRepository
	pushClient  PushClient
	txManager   TxManager
	logger      Logger
	interval    time.Duration
	batchSize   int
	maxAttempts int

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates an outbox dispatcher.
func New(
	outboxRepo OutboxRepository,
	pushClient PushClient,
	txManager TxManager,
	logger Logger,
	interval time.Duration,
	batchSize int,
	maxAttempts int,
) *Dispatcher {
	return &Dispatcher{
		outboxRepo:  outboxRepo,
		pushClient:  pushClient,
		txManager:   txManager,
		logger:      logger,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start runs the poll loop until Stop is called.
func (d *Dispatcher) Start() {
	go d.run()
}

// Stop halts the loop and waits for the in-flight cycle to finish.
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	<-d.doneCh
}

func (d *Dispatcher) run() {
	defer close(d.doneCh)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("outboxdispatcher: started, interval=%s batch=%d", d.interval, d.batchSize)

	for {
		select {
		case <-d.stopCh:
			d.logger.Info("outboxdispatcher: stopped")
			return
		case <-ticker.C:
			d.dispatchBatch(context.Background())
		}
	}
}

// dispatchBatch claims up to batchSize pending messages and delivers them.
// The claim runs in a transaction so SKIP LOCKED keeps concurrent
// dispatchers off the same rows; each message settles individually.
func (d *Dispatcher) dispatchBatch(ctx context.Context) {
	err := d.txManager.Do(ctx, func(txCtx context.Context) error {
		messages, err := d.outboxRepo.ListPending(txCtx, d.batchSize)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}

		sent := 0
		for _, msg := range messages {
			if d.deliver(txCtx, msg) {
				sent++
			}
		}

		d.logger.Info("outboxdispatcher: delivered %d/%d messages", sent, len(messages))
		return nil
	})
	if err != nil {
		d.logger.Error("outboxdispatcher: batch failed: %v", err)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg *outbox.Message) bool {
	err := d.pushClient.Send(ctx, pushgateway.Notification{
		RecipientType: msg.RecipientType,
		RecipientID:   msg.RecipientID,
		Title:         msg.Title,
		Body:          msg.Body,
	})
	if err != nil {
		d.logger.Warn("outboxdispatcher: send failed for message=%s attempt=%d: %v",
			msg.ID, msg.Attempts+1, err)
		if markErr := d.outboxRepo.MarkAttemptFailed(ctx, msg.ID, d.maxAttempts); markErr != nil {
			d.logger.Error("outboxdispatcher: failed to record attempt for message=%s: %v", msg.ID, markErr)
		}
		return false
	}

	if err := d.outboxRepo.MarkSent(ctx, msg.ID); err != nil {
		d.logger.Error("outboxdispatcher: failed to mark message=%s sent: %v", msg.ID, err)
		return false
	}
	return true
}
