package calculate_price

import (
	"errors"
	"net/http"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	calculatePrice "github.com/ruedapp/RuedApp-CoreService/internal/usecase/calculate_price"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidInput       = "datos de entrada inválidos"
	msgProviderNotFound   = "proveedor no encontrado"
	msgServiceNotOffered  = "el proveedor no ofrece este servicio"
	msgVehicleNotFound    = "vehículo no encontrado"
)

type Handler struct {
	useCase CalculatePriceUseCase
	logger  Logger
}

func NewHandler(useCase CalculatePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/requests/price
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CalculatePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /requests/price - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &calculatePrice.Request{
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		VehicleID:  req.VehicleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, calculatePrice.ErrProviderNotFound):
			h.logger.Warn("POST /requests/price - Provider not found: provider_id=%d", req.ProviderID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, calculatePrice.ErrServiceNotOffered):
			h.logger.Warn("POST /requests/price - Service not offered: provider_id=%d, service_id=%d",
				req.ProviderID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotOffered)

		case errors.Is(err, calculatePrice.ErrVehicleNotFound):
			h.logger.Warn("POST /requests/price - Vehicle not found: vehicle_id=%v", req.VehicleID)
			handlers.RespondNotFound(w, msgVehicleNotFound)

		case errors.Is(err, calculatePrice.ErrInvalidInput):
			h.logger.Warn("POST /requests/price - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /requests/price - Failed: provider_id=%d, service_id=%d, error=%v",
				req.ProviderID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /requests/price - provider_id=%d service_id=%d total=%.0f",
		req.ProviderID, req.ServiceID, result.FinalPrice)
	handlers.RespondJSON(w, http.StatusOK, CalculatePriceResponse{
		Success:           true,
		ServiceName:       result.ServiceName,
		EstimatedDuration: result.EstimatedDurationMinutes,
		PriceBreakdown: PriceBreakdownResponse{
			BasePrice:       result.Breakdown.BasePrice,
			VehicleModifier: result.Breakdown.VehicleModifier,
			AgeModifier:     result.Breakdown.AgeModifier,
			Total:           result.Breakdown.Total,
		},
		FinalPrice: result.FinalPrice,
	})
}
