package create_payment_intent

import (
	"errors"
	"net/http"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/api/middleware"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgMissingUserID      = "falta el ID del usuario"
	msgInvalidInput       = "datos de entrada inválidos"
	msgRequestNotFound    = "solicitud no encontrada"
	msgForbidden          = "acceso denegado"
	msgAmountMismatch     = "el monto no coincide con el total de la solicitud"
	msgPaymentDeclined    = "pago rechazado por el procesador"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/intents
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /payments/intents - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateIntentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/intents - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateIntent(r.Context(), &models.CreateIntentRequest{
		CustomerID:       userID,
		ServiceRequestID: req.ServiceRequestID,
		ProviderID:       req.ProviderID,
		Amount:           req.Amount,
		Description:      req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrRequestNotFound):
			h.logger.Warn("POST /payments/intents - Request not found: request_id=%d", req.ServiceRequestID)
			handlers.RespondNotFound(w, msgRequestNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /payments/intents - Access denied: request_id=%d, user_id=%d",
				req.ServiceRequestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrAmountMismatch):
			h.logger.Warn("POST /payments/intents - Amount mismatch: request_id=%d, amount=%.2f",
				req.ServiceRequestID, req.Amount)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgAmountMismatch)

		case errors.Is(err, payments.ErrPaymentDeclined):
			h.logger.Warn("POST /payments/intents - Declined: request_id=%d", req.ServiceRequestID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments/intents - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments/intents - Failed: request_id=%d, error=%v",
				req.ServiceRequestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/intents - Intent created: intent_id=%s, request_id=%d",
		result.IntentID, req.ServiceRequestID)
	handlers.RespondJSON(w, http.StatusCreated, CreateIntentResponse{
		Success:      true,
		IntentID:     result.IntentID,
		ClientSecret: result.ClientSecret,
	})
}
