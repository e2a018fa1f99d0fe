package refund_payment

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
	msgInvalidInput       = "datos de entrada inválidos"
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

// Handle POST /api/v1/payments/intents/{intentId}/refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	intentID := vars["intentId"]
	if intentID == "" {
		h.logger.Warn("POST /payments/intents/{id}/refund - Missing intent ID")
		handlers.RespondBadRequest(w, msgMissingIntentID)
		return
	}

	var req RefundPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/intents/{id}/refund - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Refund(r.Context(), intentID, &models.RefundRequest{
		ServiceRequestID: req.ServiceRequestID,
		Amount:           req.Amount,
		Reason:           req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/intents/{id}/refund - Payment not found: intent_id=%s", intentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /payments/intents/{id}/refund - Mismatched request: intent_id=%s, request_id=%d",
				intentID, req.ServiceRequestID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments/intents/{id}/refund - Invalid input: intent_id=%s, %v", intentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /payments/intents/{id}/refund - Failed: intent_id=%s, error=%v", intentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/intents/{id}/refund - Refunded: intent_id=%s, refund_id=%s, amount=%.0f",
		intentID, result.RefundID, result.Amount)
	handlers.RespondJSON(w, http.StatusOK, RefundPaymentResponse{
		Success:  true,
		RefundID: result.RefundID,
		Amount:   result.Amount,
		Status:   result.Status,
	})
}
