package search_providers

import (
	"errors"
	"net/http"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	searchProviders "github.com/ruedapp/RuedApp-CoreService/internal/usecase/search_providers"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidCoordinates = "coordenadas inválidas"
)

type Handler struct {
	useCase SearchProvidersUseCase
	logger  Logger
}

func NewHandler(useCase SearchProvidersUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/providers/search
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req SearchProvidersRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/search - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &searchProviders.Request{
		Latitude:      req.UserLat,
		Longitude:     req.UserLng,
		RadiusKm:      req.RadiusKm,
		ServiceID:     req.ServiceID,
		VehicleTypeID: req.VehicleTypeID,
		Limit:         req.Limit,
	})
	if err != nil {
		switch {
		case errors.Is(err, searchProviders.ErrInvalidInput):
			h.logger.Warn("POST /providers/search - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCoordinates)

		default:
			h.logger.Error("POST /providers/search - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /providers/search - lat=%.4f lng=%.4f found=%d",
		req.UserLat, req.UserLng, result.Stats.TotalFound)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
