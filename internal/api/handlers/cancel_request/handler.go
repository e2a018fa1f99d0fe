package cancel_request

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/api/middleware"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"
)

const (
	msgInvalidRequestID   = "ID de solicitud inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgMissingUserID      = "falta el ID del usuario"
	msgNotFound           = "solicitud no encontrada"
	msgForbidden          = "acceso denegado"
	msgCannotCancel       = "la solicitud ya no puede ser cancelada"
	msgRequestCancelled   = "solicitud cancelada"
)

type Handler struct {
	service RequestService
	logger  Logger
}

func NewHandler(service RequestService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/requests/{requestId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /requests/{id}/cancel - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /requests/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// The body is optional; cancelling without a reason is fine.
	var req CancelRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("PATCH /requests/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cancelled, err := h.service.Cancel(r.Context(), requestID, &models.CancelRequest{
		UserID: userID,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("PATCH /requests/{id}/cancel - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrAccessDenied):
			h.logger.Warn("PATCH /requests/{id}/cancel - Access denied: request_id=%d, user_id=%d",
				requestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, requests.ErrCannotCancel):
			h.logger.Warn("PATCH /requests/{id}/cancel - Cannot cancel: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /requests/{id}/cancel - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id}/cancel - Request cancelled: request_id=%d, user_id=%d",
		requestID, userID)
	handlers.RespondJSON(w, http.StatusOK, CancelRequestResponse{
		Success:        true,
		ServiceRequest: cancelled,
		Message:        msgRequestCancelled,
	})
}
