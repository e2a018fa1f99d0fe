package create_request

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/outbox"
	providerRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/provider"
	vehicleRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/vehicle"
)

// UseCase opens a new service request after checking that the vehicle
// belongs to the requesting user and that the provider actually offers the
// service for that vehicle class.
type UseCase struct {
	vehicleRepo  VehicleRepository
	providerRepo ProviderRepository
	requestRepo  RequestRepository
	outboxRepo   OutboxRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the request creation use case.
func NewUseCase(
	vehicleRepo VehicleRepository,
	providerRepo ProviderRepository,
	requestRepo RequestRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		vehicleRepo:  vehicleRepo,
		providerRepo: providerRepo,
		requestRepo:  requestRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute creates the request in pending status with both amounts set to
// the provider's listed price. The insert and the provider notification
// commit in one transaction.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		return nil, err
	}

	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CreateRequest: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateRequest: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	// A vehicle owned by someone else is indistinguishable from a missing
	// one, so enumeration of other users' vehicle ids yields nothing.
	if vehicle.OwnerID != req.UserID || !vehicle.IsActive {
		uc.logger.Warn("CreateRequest: vehicle id=%d not usable by user id=%d", req.VehicleID, req.UserID)
		return nil, ErrVehicleNotFound
	}

	provider, err := uc.providerRepo.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			uc.logger.Warn("CreateRequest: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateRequest: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}
	if !provider.IsActive {
		uc.logger.Warn("CreateRequest: provider id=%d is inactive", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	service, err := uc.providerRepo.GetProviderService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrServiceNotOffered) {
			uc.logger.Warn("CreateRequest: service id=%d not offered by provider id=%d",
				req.ServiceID, req.ProviderID)
			return nil, ErrServiceNotOffered
		}
		uc.logger.Error("CreateRequest: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.CompatibleWith(vehicle.VehicleTypeID) {
		uc.logger.Warn("CreateRequest: vehicle type id=%d rejected for provider=%d service=%d",
			vehicle.VehicleTypeID, req.ProviderID, req.ServiceID)
		return nil, ErrIncompatibleVehicleType
	}

	newRequest := &domain.ServiceRequest{
		UserID:          req.UserID,
		ProviderID:      req.ProviderID,
		VehicleID:       req.VehicleID,
		ServiceID:       req.ServiceID,
		Status:          domain.StatusPending,
		EstimatedAmount: service.Price,
		TotalAmount:     service.Price,
		ScheduledDate:   req.ScheduledDate,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
		Notes:           req.Notes,
	}

	var created *domain.ServiceRequest
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err = uc.requestRepo.Create(txCtx, newRequest)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		body := fmt.Sprintf("Tienes una nueva solicitud de %s (#%d)", service.ServiceName, created.ID)
		if err := uc.outboxRepo.Enqueue(txCtx, outbox.RecipientProvider, req.ProviderID,
			"Nueva solicitud de servicio", body); err != nil {
			return fmt.Errorf("enqueue notification: %w", err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("CreateRequest: transaction failed for user=%d provider=%d: %v",
			req.UserID, req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateRequest: created request id=%d user=%d provider=%d service=%d amount=%.0f",
		created.ID, req.UserID, req.ProviderID, req.ServiceID, service.Price)

	return &Response{
		Request:     created,
		ServiceName: service.ServiceName,
	}, nil
}
