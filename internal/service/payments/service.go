package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	"github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/outbox"
	paymentRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/payment"
	requestRepo "github.com/ruedapp/RuedApp-CoreService/internal/infra/storage/servicerequest"
	"github.com/ruedapp/RuedApp-CoreService/internal/integrations/paymentgateway"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments/models"
)

// Service coordinates the local payment ledger with the external processor.
// The processor intent id keys every ledger row, which makes the direct
// confirm path and the webhook path converge on the same state no matter
// which lands first or how often either is replayed.
type Service struct {
	paymentRepo  PaymentRepository
	requestRepo  RequestRepository
	gateway      GatewayClient
	outboxRepo   OutboxRepository
	txManager    TxManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService creates the payment coordination service.
func NewService(
	paymentRepo PaymentRepository,
	requestRepo RequestRepository,
	gateway GatewayClient,
	outboxRepo OutboxRepository,
	txManager TxManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		requestRepo:  requestRepo,
		gateway:      gateway,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// CreateIntent registers a payment intent with the processor after
// re-validating ownership and the amount against the stored request total.
// The ledger row is inserted after the processor confirms; if that insert
// fails the external intent still exists, which is logged and accepted
// rather than rolled back.
func (s *Service) CreateIntent(ctx context.Context, req *models.CreateIntentRequest) (*models.CreateIntentResponse, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	request, err := s.requestRepo.GetByID(ctx, req.ServiceRequestID)
	if err != nil {
		if errors.Is(err, requestRepo.ErrRequestNotFound) {
			s.logger.Warn("CreateIntent: request id=%d not found", req.ServiceRequestID)
			return nil, ErrRequestNotFound
		}
		s.logger.Error("CreateIntent: repository error for request id=%d: %v", req.ServiceRequestID, err)
		return nil, fmt.Errorf("%w: CreateIntent - repository error: %v", ErrInternal, err)
	}

	if request.UserID != req.CustomerID || request.ProviderID != req.ProviderID {
		s.logger.Warn("CreateIntent: request id=%d does not belong to customer=%d provider=%d",
			req.ServiceRequestID, req.CustomerID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	if math.Abs(req.Amount-request.TotalAmount) > domain.AmountTolerance {
		s.logger.Warn("CreateIntent: amount %.2f does not match request total %.2f for request id=%d",
			req.Amount, request.TotalAmount, req.ServiceRequestID)
		return nil, ErrAmountMismatch
	}

	description := fmt.Sprintf("Solicitud de servicio #%d", req.ServiceRequestID)
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	intent, err := s.gateway.CreateIntent(ctx, int64(math.Round(req.Amount)), domain.DefaultCurrency,
		description, map[string]string{
			"service_request_id": fmt.Sprintf("%d", req.ServiceRequestID),
			"provider_id":        fmt.Sprintf("%d", req.ProviderID),
			"customer_id":        fmt.Sprintf("%d", req.CustomerID),
		})
	if err != nil {
		if errors.Is(err, paymentgateway.ErrDeclined) {
			return nil, ErrPaymentDeclined
		}
		s.logger.Error("CreateIntent: processor error for request id=%d: %v", req.ServiceRequestID, err)
		return nil, fmt.Errorf("%w: CreateIntent - processor error: %v", ErrInternal, err)
	}

	ledgerRow := &domain.Payment{
		ID:               intent.ID,
		ServiceRequestID: req.ServiceRequestID,
		ProviderID:       req.ProviderID,
		CustomerID:       req.CustomerID,
		Amount:           req.Amount,
		Currency:         domain.DefaultCurrency,
		Status:           domain.PaymentPending,
	}
	if err := s.paymentRepo.Create(ctx, ledgerRow); err != nil {
		// The processor intent exists but the ledger does not know it.
		// Acknowledged inconsistency: log loudly and keep the intent alive
		// so the client can still pay.
		s.logger.Error("CreateIntent: ledger insert failed for intent=%s request=%d: %v",
			intent.ID, req.ServiceRequestID, err)
	}

	s.logger.Info("CreateIntent: intent=%s request=%d amount=%.0f", intent.ID, req.ServiceRequestID, req.Amount)
	return &models.CreateIntentResponse{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// Confirm applies payment_intent.succeeded through the direct path. Safe to
// call any number of times; replays leave the ledger and request untouched.
func (s *Service) Confirm(ctx context.Context, intentID string, req *models.ConfirmRequest) (*models.ConfirmResponse, error) {
	payment, err := s.getPayment(ctx, intentID, "Confirm")
	if err != nil {
		return nil, err
	}
	if payment.ServiceRequestID != req.ServiceRequestID {
		s.logger.Warn("Confirm: intent=%s is not linked to request id=%d", intentID, req.ServiceRequestID)
		return nil, ErrAccessDenied
	}

	status, err := s.applyEvent(ctx, payment, domain.EventPaymentSucceeded)
	if err != nil {
		return nil, err
	}

	return &models.ConfirmResponse{
		IntentID: intentID,
		Status:   string(status),
	}, nil
}

// Refund creates a processor-side refund first and mirrors it locally only
// after the processor accepts. Partial refunds pass an explicit amount.
func (s *Service) Refund(ctx context.Context, intentID string, req *models.RefundRequest) (*models.RefundResponse, error) {
	payment, err := s.getPayment(ctx, intentID, "Refund")
	if err != nil {
		return nil, err
	}
	if payment.ServiceRequestID != req.ServiceRequestID {
		s.logger.Warn("Refund: intent=%s is not linked to request id=%d", intentID, req.ServiceRequestID)
		return nil, ErrAccessDenied
	}

	var processorAmount *int64
	refundAmount := payment.Amount
	if req.Amount != nil {
		if *req.Amount <= 0 || *req.Amount > payment.Amount {
			return nil, fmt.Errorf("%w: refund amount out of range", ErrInvalidInput)
		}
		refundAmount = *req.Amount
		rounded := int64(math.Round(*req.Amount))
		processorAmount = &rounded
	}

	reason := ""
	if req.Reason != nil {
		reason = *req.Reason
	}

	refund, err := s.gateway.CreateRefund(ctx, intentID, processorAmount, reason)
	if err != nil {
		if errors.Is(err, paymentgateway.ErrIntentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Refund: processor error for intent=%s: %v", intentID, err)
		return nil, fmt.Errorf("%w: Refund - processor error: %v", ErrInternal, err)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.SetRefunded(txCtx, intentID, refundAmount); err != nil {
			return fmt.Errorf("set ledger refunded: %w", err)
		}
		if err := s.requestRepo.MarkRefunded(txCtx, payment.ServiceRequestID); err != nil {
			return fmt.Errorf("mark request refunded: %w", err)
		}

		body := fmt.Sprintf("El reembolso de tu solicitud #%d fue procesado", payment.ServiceRequestID)
		return s.outboxRepo.Enqueue(txCtx, outbox.RecipientUser, payment.CustomerID,
			"Reembolso procesado", body)
	})
	if err != nil {
		s.logger.Error("Refund: local update failed for intent=%s: %v", intentID, err)
		return nil, fmt.Errorf("%w: Refund - local update failed: %v", ErrInternal, err)
	}

	s.logger.Info("Refund: refund=%s intent=%s amount=%.0f", refund.ID, intentID, refundAmount)
	return &models.RefundResponse{
		RefundID: refund.ID,
		Amount:   refundAmount,
		Status:   refund.Status,
	}, nil
}

// HandleWebhook authenticates a processor delivery and folds the event into
// the ledger. Unknown event types are acknowledged and ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := s.gateway.VerifyWebhookSignature(payload, sigHeader, s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("HandleWebhook: signature verification failed: %v", err)
		return ErrInvalidSignature
	}

	intentID := event.Data.Object.ID
	if intentID == "" {
		return fmt.Errorf("%w: event carries no intent id", ErrInvalidInput)
	}

	payment, err := s.paymentRepo.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			// An intent the ledger never recorded (see CreateIntent insert
			// failure). Acknowledge so the processor stops retrying.
			s.logger.Warn("HandleWebhook: no ledger row for intent=%s, event=%s dropped", intentID, event.Type)
			return nil
		}
		return fmt.Errorf("%w: HandleWebhook - repository error: %v", ErrInternal, err)
	}

	switch domain.PaymentEvent(event.Type) {
	case domain.EventPaymentSucceeded, domain.EventPaymentFailed:
		_, err = s.applyEvent(ctx, payment, domain.PaymentEvent(event.Type))
		return err

	case domain.EventPaymentRefunded:
		refundAmount := float64(event.Data.Object.AmountRefunded)
		if refundAmount <= 0 {
			refundAmount = payment.Amount
		}
		err = s.txManager.Do(ctx, func(txCtx context.Context) error {
			if err := s.paymentRepo.SetRefunded(txCtx, intentID, refundAmount); err != nil {
				return fmt.Errorf("set ledger refunded: %w", err)
			}
			return s.requestRepo.MarkRefunded(txCtx, payment.ServiceRequestID)
		})
		if err != nil {
			return fmt.Errorf("%w: HandleWebhook - refund update failed: %v", ErrInternal, err)
		}
		s.logger.Info("HandleWebhook: refund applied for intent=%s", intentID)
		return nil

	default:
		s.logger.Info("HandleWebhook: ignoring event type=%s for intent=%s", event.Type, intentID)
		return nil
	}
}

// applyEvent folds a terminal processor event into the ledger and, when the
// status actually changes, advances the linked request and notifies the
// customer. The conditional SetStatus makes concurrent applications of the
// same event collapse into one effective write.
func (s *Service) applyEvent(ctx context.Context, payment *domain.Payment, event domain.PaymentEvent) (domain.PaymentStatus, error) {
	next, changed := domain.ApplyPaymentEvent(payment.Status, event)
	if !changed {
		s.logger.Info("applyEvent: event=%s is a no-op for intent=%s status=%s",
			event, payment.ID, payment.Status)
		return payment.Status, nil
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		applied, err := s.paymentRepo.SetStatus(txCtx, payment.ID, payment.Status, next)
		if err != nil {
			return fmt.Errorf("set ledger status: %w", err)
		}
		if !applied {
			// A concurrent path won the race; nothing left to do.
			return nil
		}

		if next == domain.PaymentCompleted {
			if err := s.requestRepo.MarkPaid(txCtx, payment.ServiceRequestID); err != nil {
				return fmt.Errorf("mark request paid: %w", err)
			}
			body := fmt.Sprintf("Recibimos el pago de tu solicitud #%d", payment.ServiceRequestID)
			return s.outboxRepo.Enqueue(txCtx, outbox.RecipientUser, payment.CustomerID,
				"Pago recibido", body)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("applyEvent: failed to apply event=%s for intent=%s: %v", event, payment.ID, err)
		return payment.Status, fmt.Errorf("%w: applyEvent - %v", ErrInternal, err)
	}

	s.logger.Info("applyEvent: intent=%s %s -> %s via %s", payment.ID, payment.Status, next, event)
	return next, nil
}

func (s *Service) getPayment(ctx context.Context, intentID, op string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("%s: payment intent=%s not found", op, intentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("%s: repository error for intent=%s: %v", op, intentID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return payment, nil
}
