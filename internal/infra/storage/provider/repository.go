package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/pkg/dbmetrics"
	"github.com/ruedapp/RuedApp-CoreService/pkg/psqlbuilder"
)

// Repository reads providers and their service catalog.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a provider repository.
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a provider including its working hours.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_name",
		"latitude",
		"longitude",
		"rating",
		"total_reviews",
		"is_active",
		"working_hours",
		"created_at",
		"updated_at",
	).
		From("providers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanProvider(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	return p, nil
}

// ListActive returns active providers, optionally narrowed to those
// offering a service (and a service compatible with a vehicle type).
// Ordering is by id so distance ranking downstream gets a stable input.
func (r *Repository) ListActive(ctx context.Context, serviceID, vehicleTypeID *int64) ([]*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"p.id",
		"p.business_name",
		"p.latitude",
		"p.longitude",
		"p.rating",
		"p.total_reviews",
		"p.is_active",
		"p.working_hours",
		"p.created_at",
		"p.updated_at",
	).
		From("providers p").
		Where(squirrel.Eq{"p.is_active": true}).
		OrderBy("p.id ASC")

	if serviceID != nil {
		builder = builder.
			Join("provider_services ps ON ps.provider_id = p.id").
			Where(squirrel.Eq{"ps.service_id": *serviceID})

		if vehicleTypeID != nil {
			builder = builder.Where(squirrel.Or{
				squirrel.Eq{"ps.required_vehicle_type_id": nil},
				squirrel.Eq{"ps.required_vehicle_type_id": *vehicleTypeID},
			})
		}
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]*domain.Provider, 0)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return providers, nil
}

// GetProviderService fetches the catalog entry for one service of one
// provider, joined with the service name and vehicle-type requirement.
func (r *Repository) GetProviderService(ctx context.Context, providerID, serviceID int64) (*domain.ProviderService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"ps.provider_id",
		"ps.service_id",
		"s.name",
		"ps.price",
		"ps.estimated_duration_minutes",
		"ps.required_vehicle_type_id",
	).
		From("provider_services ps").
		Join("services s ON s.id = ps.service_id").
		Where(squirrel.Eq{"ps.provider_id": providerID, "ps.service_id": serviceID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProviderService - build select query: %v", ErrBuildQuery, err)
	}

	var ps domain.ProviderService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ps.ProviderID,
		&ps.ServiceID,
		&ps.ServiceName,
		&ps.Price,
		&ps.EstimatedDurationMinutes,
		&ps.RequiredVehicleTypeID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotOffered
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProviderService - scan row: %v", ErrScanRow, err)
	}

	return &ps, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row rowScanner) (*domain.Provider, error) {
	var p domain.Provider
	var workingHours []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BusinessName,
		&p.Latitude,
		&p.Longitude,
		&p.Rating,
		&p.TotalReviews,
		&p.IsActive,
		&workingHours,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(workingHours) > 0 {
		if err := json.Unmarshal(workingHours, &p.WorkingHours); err != nil {
			return nil, fmt.Errorf("decode working_hours: %v", err)
		}
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
