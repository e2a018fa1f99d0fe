package requests

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/outbox"
	requestRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/servicerequest"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"
)

// Service manages the lifecycle of service requests after creation.
type Service struct {
	requestRepo  RequestRepository
	outboxRepo   OutboxRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the request lifecycle service.
func NewService(
	requestRepo RequestRepository,
	outboxRepo OutboxRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		requestRepo:  requestRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID fetches a request. Users can only read their own requests.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.RequestResponse, error) {
	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("GetByID: request id=%d not found", id)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("GetByID: repository error for request id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if request.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to request id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainRequest(request), nil
}

// GetUserRequests lists a user's request history, optionally filtered by
// status, newest first.
func (s *Service) GetUserRequests(ctx context.Context, req *models.GetUserRequestsRequest) (*models.RequestListResponse, error) {
	var status *domain.RequestStatus
	if req.Status != nil {
		parsed, err := domain.ParseRequestStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserRequests: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &parsed
	}

	requests, err := s.requestRepo.GetByUserID(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserRequests: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserRequests - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserRequests: fetched %d requests for user=%d", len(requests), req.UserID)
	return models.FromDomainRequestList(requests), nil
}

// Update mutates a request. Status changes are validated against the
// lifecycle graph; an illegal edge is rejected with ErrInvalidTransition.
// A status change and its user notification commit in one transaction.
func (s *Service) Update(ctx context.Context, requestID int64, req *models.UpdateRequest) (*models.RequestResponse, error) {
	var updated *domain.ServiceRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		previousStatus := request.Status

		if req.Status != nil {
			newStatus, err := domain.ParseRequestStatus(*req.Status)
			if err != nil {
				return fmt.Errorf("%w: invalid status", ErrInvalidInput)
			}
			if !domain.CanTransition(request.Status, newStatus) {
				s.logger.Warn("Update: illegal transition %s -> %s for request id=%d",
					request.Status, newStatus, requestID)
				return ErrInvalidTransition
			}
			if err := request.ApplyTransition(newStatus, s.timeProvider.Now()); err != nil {
				return ErrInvalidTransition
			}
		}

		if req.ProviderNotes != nil {
			request.ProviderNotes = req.ProviderNotes
		}
		if req.CompletionNotes != nil {
			request.CompletionNotes = req.CompletionNotes
		}
		if req.ActualAmount != nil {
			if *req.ActualAmount < 0 {
				return fmt.Errorf("%w: actual amount must not be negative", ErrInvalidInput)
			}
			request.TotalAmount = *req.ActualAmount
		}

		if err := s.requestRepo.Update(txCtx, request); err != nil {
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if request.Status != previousStatus {
			title, body := statusNotification(request)
			if err := s.outboxRepo.Enqueue(txCtx, outbox.RecipientUser, request.UserID, title, body); err != nil {
				return fmt.Errorf("%w: Update - enqueue notification: %v", ErrInternal, err)
			}
		}

		updated = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: updated request id=%d status=%s", requestID, updated.Status)
	return models.FromDomainRequest(updated), nil
}

// Cancel cancels a request on behalf of its owner. Only pending and
// confirmed requests can be cancelled.
func (s *Service) Cancel(ctx context.Context, requestID int64, req *models.CancelRequest) (*models.RequestResponse, error) {
	var cancelled *domain.ServiceRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		request, err := s.requestRepo.GetByID(txCtx, requestID)
		if err != nil {
			if errors.Is(err, requestRepo.ErrRequestNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if request.UserID != req.UserID {
			s.logger.Warn("Cancel: access denied for user=%d to request id=%d", req.UserID, requestID)
			return ErrAccessDenied
		}

		if !request.CanBeCancelled() {
			s.logger.Warn("Cancel: request id=%d cannot be cancelled, status=%s", requestID, request.Status)
			return ErrCannotCancel
		}

		if err := request.ApplyTransition(domain.StatusCancelled, s.timeProvider.Now()); err != nil {
			return ErrCannotCancel
		}
		request.CancellationReason = req.Reason

		if err := s.requestRepo.Update(txCtx, request); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		body := fmt.Sprintf("La solicitud #%d fue cancelada por el cliente", requestID)
		if err := s.outboxRepo.Enqueue(txCtx, outbox.RecipientProvider, request.ProviderID,
			"Solicitud cancelada", body); err != nil {
			return fmt.Errorf("%w: Cancel - enqueue notification: %v", ErrInternal, err)
		}

		cancelled = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: cancelled request id=%d by user=%d", requestID, req.UserID)
	return models.FromDomainRequest(cancelled), nil
}

// statusNotification builds the user-facing copy for a status change.
func statusNotification(r *domain.ServiceRequest) (title, body string) {
	switch r.Status {
	case domain.StatusConfirmed:
		return "Solicitud confirmada", fmt.Sprintf("Tu solicitud #%d fue confirmada por el proveedor", r.ID)
	case domain.StatusInProgress:
		return "Servicio en curso", fmt.Sprintf("Tu servicio #%d está en curso", r.ID)
	case domain.StatusCompleted:
		return "Servicio completado", fmt.Sprintf("Tu servicio #%d fue completado", r.ID)
	case domain.StatusPaid:
		return "Pago recibido", fmt.Sprintf("Recibimos el pago de tu solicitud #%d", r.ID)
	case domain.StatusCancelled:
		return "Solicitud cancelada", fmt.Sprintf("Tu solicitud #%d fue cancelada", r.ID)
	case domain.StatusRefunded:
		return "Reembolso procesado", fmt.Sprintf("El reembolso de tu solicitud #%d fue procesado", r.ID)
	default:
		return "Actualización de solicitud", fmt.Sprintf("Tu solicitud #%d cambió de estado a %s", r.ID, r.Status)
	}
}
