package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/pkg/dbmetrics"
	"github.com/ruedapp/RuedApp-CoreService/pkg/psqlbuilder"
)

const table = "payments"

// Repository persists the local payment ledger. Rows are keyed by the
// processor intent id; status transitions use conditional updates so the
// direct-confirm path and the webhook path can both apply the same event
// without stepping on each other.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a payment ledger repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new ledger row for a freshly created intent.
func (r *Repository) Create(ctx context.Context, p *domain.Payment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"service_request_id",
			"provider_id",
			"customer_id",
			"amount",
			"currency",
			"status",
		).
		Values(
			p.ID,
			p.ServiceRequestID,
			p.ProviderID,
			p.CustomerID,
			p.Amount,
			p.Currency,
			p.Status,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByIntentID fetches a ledger row by processor intent id.
func (r *Repository) GetByIntentID(ctx context.Context, intentID string) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_request_id",
		"provider_id",
		"customer_id",
		"amount",
		"currency",
		"status",
		"refund_amount",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": intentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIntentID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.ServiceRequestID,
		&p.ProviderID,
		&p.CustomerID,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.RefundAmount,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIntentID - scan payment: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// SetStatus applies a status transition computed by
// domain.ApplyPaymentEvent. The update is conditional on the expected
// current status, so a concurrent writer that already applied the same
// event turns this call into a no-op. Returns whether a row changed.
func (r *Repository) SetStatus(ctx context.Context, intentID string, from, to domain.PaymentStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": intentID, "status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}

// SetRefunded records a processor-confirmed refund.
func (r *Repository) SetRefunded(ctx context.Context, intentID string, refundAmount float64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.PaymentRefunded).
		Set("refund_amount", refundAmount).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": intentID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetRefunded - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetRefunded - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetRefunded - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}
