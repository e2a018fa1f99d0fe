package calculate_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	providerRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/provider"
	vehicleRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/vehicle"
)

// UseCase quotes the price of a provider service for a vehicle.
type UseCase struct {
	providerRepo ProviderRepository
	vehicleRepo  VehicleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the price calculation use case.
func NewUseCase(providerRepo ProviderRepository, vehicleRepo VehicleRepository, logger Logger) *UseCase {
	return &UseCase{
		providerRepo: providerRepo,
		vehicleRepo:  vehicleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute computes the quote. Without a vehicle the base price stands as
// is; with one, the vehicle-type percentage modifier and the age surcharge
// apply.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ProviderID <= 0 || req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: providerID and serviceID must be positive", ErrInvalidInput)
	}

	if _, err := uc.providerRepo.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CalculatePrice: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CalculatePrice: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	service, err := uc.providerRepo.GetProviderService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrServiceNotOffered) {
			uc.logger.Warn("CalculatePrice: service id=%d not offered by provider id=%d",
				req.ServiceID, req.ProviderID)
			return nil, ErrServiceNotOffered
		}
		uc.logger.Error("CalculatePrice: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	modifierPercent := 0.0
	ageYears := 0

	if req.VehicleID != nil {
		vehicle, err := uc.vehicleRepo.GetByID(ctx, *req.VehicleID)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				uc.logger.Warn("CalculatePrice: vehicle id=%d not found", *req.VehicleID)
				return nil, ErrVehicleNotFound
			}
			uc.logger.Error("CalculatePrice: failed to get vehicle id=%d: %v", *req.VehicleID, err)
			return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
		}

		if vt, ok := domain.VehicleTypeByID(vehicle.VehicleTypeID); ok {
			modifierPercent = vt.PriceModifierPercent
		}
		ageYears = vehicle.AgeYears(uc.timeProvider.Now())
	}

	breakdown := computePrice(service.Price, modifierPercent, ageYears)

	uc.logger.Info("CalculatePrice: provider=%d service=%d base=%.0f modifier=%.0f age=%.0f total=%.0f",
		req.ProviderID, req.ServiceID, breakdown.BasePrice, breakdown.VehicleModifier,
		breakdown.AgeModifier, breakdown.Total)

	return &Response{
		ServiceName:              service.ServiceName,
		EstimatedDurationMinutes: service.EstimatedDurationMinutes,
		Breakdown:                breakdown,
		FinalPrice:               breakdown.Total,
	}, nil
}
