package servicerequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/pkg/dbmetrics"
	"github.com/ruedapp/RuedApp-CoreService/pkg/psqlbuilder"
)

const table = "service_requests"

var columns = []string{
	"id",
	"user_id",
	"provider_id",
	"vehicle_id",
	"service_id",
	"status",
	"estimated_amount",
	"total_amount",
	"scheduled_date",
	"location_lat",
	"location_lng",
	"location_address",
	"notes",
	"provider_notes",
	"completion_notes",
	"cancellation_reason",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository persists service requests.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a service request repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new request. Runs inside the transaction carried by the
// context when one is present.
func (r *Repository) Create(ctx context.Context, req *domain.ServiceRequest) (*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"user_id",
			"provider_id",
			"vehicle_id",
			"service_id",
			"status",
			"estimated_amount",
			"total_amount",
			"scheduled_date",
			"location_lat",
			"location_lng",
			"location_address",
			"notes",
		).
		Values(
			req.UserID,
			req.ProviderID,
			req.VehicleID,
			req.ServiceID,
			req.Status,
			req.EstimatedAmount,
			req.TotalAmount,
			req.ScheduledDate,
			req.LocationLat,
			req.LocationLng,
			req.LocationAddress,
			req.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID fetches a single request.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	// Inside a transaction the row is locked so a concurrent status update
	// cannot interleave with the read-modify-write sequence.
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// GetByUserID lists a user's requests, newest first, optionally filtered
// by status.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.RequestStatus) ([]*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetWithFilter lists requests matching the filter. When called inside a
// transaction with a provider+date filter, rows are locked FOR UPDATE —
// this is how request creation serializes against concurrent bookings of
// the same provider schedule.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.RequestFilter) ([]*domain.ServiceRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).From(table)

	if filter.ProviderID != nil {
		builder = builder.Where(squirrel.Eq{"provider_id": *filter.ProviderID})
	}
	if filter.ScheduledDate != nil {
		builder = builder.Where("scheduled_date::date = ?::date", *filter.ScheduledDate)
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		builder = builder.Where(squirrel.NotEq{"status": inactive})
	}

	builder = builder.OrderBy("scheduled_date ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.ProviderID != nil && filter.ScheduledDate != nil {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// GetAppointmentsForDate lists the occupied time windows on a provider's
// schedule for a date: every active request's scheduled start time joined
// with the booked service duration.
func (r *Repository) GetAppointmentsForDate(ctx context.Context, providerID int64, date time.Time) ([]domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	inactive := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		inactive[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(
		"to_char(sr.scheduled_date, 'HH24:MI')",
		fmt.Sprintf("COALESCE(ps.estimated_duration_minutes, %d)", domain.DefaultAppointmentMinutes),
	).
		From(table+" sr").
		LeftJoin("provider_services ps ON ps.provider_id = sr.provider_id AND ps.service_id = sr.service_id").
		Where(squirrel.Eq{"sr.provider_id": providerID}).
		Where("sr.scheduled_date::date = ?::date", date).
		Where(squirrel.NotEq{"sr.status": inactive}).
		OrderBy("sr.scheduled_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsForDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsForDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var a domain.Appointment
		if err := rows.Scan(&a.StartTime, &a.DurationMinutes); err != nil {
			return nil, fmt.Errorf("%w: GetAppointmentsForDate - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAppointmentsForDate - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

// Update persists the mutable fields of a request after a state change.
func (r *Repository) Update(ctx context.Context, req *domain.ServiceRequest) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", req.Status).
		Set("total_amount", req.TotalAmount).
		Set("provider_notes", req.ProviderNotes).
		Set("completion_notes", req.CompletionNotes).
		Set("cancellation_reason", req.CancellationReason).
		Set("completed_at", req.CompletedAt).
		Set("cancelled_at", req.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": req.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// MarkPaid sets the paid status only when the request is still in a state
// the payment side-channel may advance. The conditional WHERE keeps the
// operation idempotent under the confirm/webhook race.
func (r *Repository) MarkPaid(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusPaid).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": []string{
			string(domain.StatusPending),
			string(domain.StatusConfirmed),
		}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	// Zero affected rows is not an error here: the request either was
	// already paid (replayed event) or has moved on in its lifecycle.
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// MarkRefunded moves a completed request to refunded.
func (r *Repository) MarkRefunded(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusRefunded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusCompleted)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRefunded - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkRefunded - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func scanRequest(row *sql.Row) (*domain.ServiceRequest, error) {
	var req domain.ServiceRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.ProviderID,
		&req.VehicleID,
		&req.ServiceID,
		&req.Status,
		&req.EstimatedAmount,
		&req.TotalAmount,
		&req.ScheduledDate,
		&req.LocationLat,
		&req.LocationLng,
		&req.LocationAddress,
		&req.Notes,
		&req.ProviderNotes,
		&req.CompletionNotes,
		&req.CancellationReason,
		&req.CompletedAt,
		&req.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func scanRequests(rows *sql.Rows) ([]*domain.ServiceRequest, error) {
	requests := make([]*domain.ServiceRequest, 0)

	for rows.Next() {
		var req domain.ServiceRequest
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&req.ID,
			&req.UserID,
			&req.ProviderID,
			&req.VehicleID,
			&req.ServiceID,
			&req.Status,
			&req.EstimatedAmount,
			&req.TotalAmount,
			&req.ScheduledDate,
			&req.LocationLat,
			&req.LocationLng,
			&req.LocationAddress,
			&req.Notes,
			&req.ProviderNotes,
			&req.CompletionNotes,
			&req.CancellationReason,
			&req.CompletedAt,
			&req.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}

		req.CreatedAt = createdAt.Time
		req.UpdatedAt = updatedAt.Time

		requests = append(requests, &req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
