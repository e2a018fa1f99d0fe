// Package outbox stores pending notifications in the same database as the
// state that triggered them, so a notification is enqueued atomically with
// the transition that caused it and delivered later by the dispatcher.
package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ruedapp/RuedApp-CoreService/pkg/dbmetrics"
	"github.com/ruedapp/RuedApp-CoreService/pkg/psqlbuilder"
)

const table = "notification_outbox"

// Recipient kinds.
const (
	RecipientUser     = "user"
	RecipientProvider = "provider"
)

// Message statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Message is a queued push notification.
type Message struct {
	ID            string
	RecipientType string
	RecipientID   int64
	Title         string
	Body          string
	Status        string
	Attempts      int
	CreatedAt     time.Time
	SentAt        *time.Time
}

// Repository persists outbox messages.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates an outbox repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Enqueue inserts a pending message. Joins the ambient transaction when one
// is present so the message commits together with the triggering change.
func (r *Repository) Enqueue(ctx context.Context, recipientType string, recipientID int64, title, body string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "recipient_type", "recipient_id", "title", "body", "status").
		Values(uuid.NewString(), recipientType, recipientID, title, body, StatusPending).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Enqueue - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Enqueue - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListPending returns up to limit pending messages, oldest first. Rows are
// locked with SKIP LOCKED so concurrent dispatcher instances never pick the
// same message.
func (r *Repository) ListPending(ctx context.Context, limit int) ([]*Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"id",
		"recipient_type",
		"recipient_id",
		"title",
		"body",
		"status",
		"attempts",
		"created_at",
		"sent_at",
	).
		From(table).
		Where(squirrel.Eq{"status": StatusPending}).
		OrderBy("created_at ASC").
		Limit(uint64(limit))

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE SKIP LOCKED")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPending - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*Message, 0)
	for rows.Next() {
		var m Message
		var createdAt sql.NullTime
		if err := rows.Scan(
			&m.ID,
			&m.RecipientType,
			&m.RecipientID,
			&m.Title,
			&m.Body,
			&m.Status,
			&m.Attempts,
			&createdAt,
			&m.SentAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListPending - scan row: %v", ErrScanRow, err)
		}
		m.CreatedAt = createdAt.Time
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListPending - rows error: %v", ErrScanRow, err)
	}

	return messages, nil
}

// MarkSent stamps a message as delivered.
func (r *Repository) MarkSent(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", StatusSent).
		Set("sent_at", squirrel.Expr("NOW()")).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkSent - execute update: %v", ErrExecQuery, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return ErrMessageNotFound
	}

	return nil
}

// MarkAttemptFailed bumps the attempt counter; once maxAttempts is reached
// the message is parked as failed and no longer retried.
func (r *Repository) MarkAttemptFailed(ctx context.Context, id string, maxAttempts int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("attempts", squirrel.Expr("attempts + 1")).
		Set("status", squirrel.Expr("CASE WHEN attempts + 1 >= ? THEN ? ELSE status END", maxAttempts, StatusFailed)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkAttemptFailed - execute update: %v", ErrExecQuery, err)
	}

	return nil
}
