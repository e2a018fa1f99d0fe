package create_request

import (
	"errors"
	"net/http"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/api/middleware"
	"github.com/ruedapp/RuedApp-CoreService/internal/service/requests/models"
	createRequest "github.com/ruedapp/RuedApp-CoreService/internal/usecase/create_request"
)

const (
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgInvalidScheduledDate = "formato de fecha inválido, se espera RFC3339"
	msgMissingUserID        = "falta el ID del usuario"
	msgInvalidInput         = "datos de entrada inválidos"
	msgVehicleNotFound      = "vehículo no encontrado"
	msgProviderNotFound     = "proveedor no encontrado"
	msgServiceNotOffered    = "el proveedor no ofrece este servicio"
	msgIncompatibleVehicle  = "el tipo de vehículo no es aceptado para este servicio"
	msgRequestCreated       = "solicitud de servicio creada"
)

type Handler struct {
	useCase CreateRequestUseCase
	logger  Logger
}

func NewHandler(useCase CreateRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /requests - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRequestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /requests - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduledDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRequest.ErrVehicleNotFound):
			h.logger.Warn("POST /requests - Vehicle not found: vehicle_id=%d, user_id=%d", req.VehicleID, userID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, createRequest.ErrProviderNotFound):
			h.logger.Warn("POST /requests - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, createRequest.ErrServiceNotOffered):
			h.logger.Warn("POST /requests - Service not offered: provider_id=%d, service_id=%d",
				req.ProviderID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotOffered)

		case errors.Is(err, createRequest.ErrIncompatibleVehicleType):
			h.logger.Warn("POST /requests - Incompatible vehicle type: vehicle_id=%d, service_id=%d",
				req.VehicleID, req.ServiceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgIncompatibleVehicle)

		case errors.Is(err, createRequest.ErrInvalidInput):
			h.logger.Warn("POST /requests - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /requests - Failed: user_id=%d, provider_id=%d, error=%v",
				userID, req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests - Request created: request_id=%d, user_id=%d", result.Request.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, CreateRequestResponse{
		Success:        true,
		ServiceRequest: models.FromDomainRequest(result.Request),
		Message:        msgRequestCreated,
	})
}
