package update_request

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"
)

const (
	msgInvalidRequestID   = "ID de solicitud inválido"
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidInput       = "datos de entrada inválidos"
	msgNotFound           = "solicitud no encontrada"
	msgInvalidTransition  = "transición de estado no permitida"
	msgRequestUpdated     = "solicitud actualizada"
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

// Handle PATCH /api/v1/requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	requestID, err := strconv.ParseInt(vars["requestId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /requests/{id} - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	var req models.UpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /requests/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.service.Update(r.Context(), requestID, &req)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			h.logger.Warn("PATCH /requests/{id} - Request not found: request_id=%d", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, requests.ErrInvalidTransition):
			h.logger.Warn("PATCH /requests/{id} - Invalid transition: request_id=%d", requestID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidTransition)

		case errors.Is(err, requests.ErrInvalidInput):
			h.logger.Warn("PATCH /requests/{id} - Invalid input: request_id=%d, %v", requestID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /requests/{id} - Failed: request_id=%d, error=%v", requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /requests/{id} - Request updated: request_id=%d, status=%s", requestID, updated.Status)
	handlers.RespondJSON(w, http.StatusOK, UpdateRequestResponse{
		Success:        true,
		ServiceRequest: updated,
		Message:        msgRequestUpdated,
	})
}
