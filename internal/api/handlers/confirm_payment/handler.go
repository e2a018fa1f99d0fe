package confirm_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgMissingIntentID    = "falta el ID del intento de pago"
	msgPaymentNotFound    = "pago no encontrado"
	msgForbidden          = "acceso denegado"
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

// Handle POST /api/v1/payments/intents/{intentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	intentID := vars["intentId"]
	if intentID == "" {
		h.logger.Warn("POST /payments/intents/{id}/confirm - Missing intent ID")
		handlers.RespondBadRequest(w, msgMissingIntentID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/intents/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Confirm(r.Context(), intentID, &models.ConfirmRequest{
		ServiceRequestID: req.ServiceRequestID,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/intents/{id}/confirm - Payment not found: intent_id=%s", intentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /payments/intents/{id}/confirm - Mismatched request: intent_id=%s, request_id=%d",
				intentID, req.ServiceRequestID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /payments/intents/{id}/confirm - Failed: intent_id=%s, error=%v", intentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/intents/{id}/confirm - Confirmed: intent_id=%s, status=%s",
		intentID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, ConfirmPaymentResponse{
		Success:  true,
		IntentID: result.IntentID,
		Status:   result.Status,
	})
}
