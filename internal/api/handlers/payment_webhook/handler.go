package payment_webhook

import (
	"errors"
	"io"
	"net/http"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/payments"
)

// SignatureHeader carries the processor's HMAC signature.
const SignatureHeader = "Webhook-Signature"

// maxPayloadBytes bounds webhook bodies; processor events are small.
const maxPayloadBytes = 1 << 20

const (
	msgUnreadableBody   = "no se pudo leer el cuerpo de la solicitud"
	msgInvalidSignature = "firma del webhook inválida"
	msgInvalidPayload   = "evento inválido"
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

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
	if err != nil {
		h.logger.Warn("POST /payments/webhook - Unreadable body: %v", err)
		handlers.RespondBadRequest(w, msgUnreadableBody)
		return
	}

	if err := h.service.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader)); err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidSignature):
			h.logger.Warn("POST /payments/webhook - Invalid signature")
			handlers.RespondError(w, http.StatusBadRequest, msgInvalidSignature)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid payload: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPayload)

		default:
			// A 5xx makes the processor redeliver the event later.
			h.logger.Error("POST /payments/webhook - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"received": true})
}
