package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	getAvailability "github.com/ruedapp/RuedApp-CoreService/internal/usecase/get_availability"
)

const (
	msgInvalidProviderID = "ID de proveedor inválido"
	msgInvalidDate       = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgProviderNotFound  = "proveedor no encontrado"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/availability?date=2026-08-31
// Without a date the slots are computed for today.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	providerID, err := strconv.ParseInt(vars["providerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/availability - Invalid date %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ProviderID: providerID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/availability - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProviderID)

		default:
			h.logger.Error("GET /providers/{id}/availability - Failed: provider_id=%d, error=%v", providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := GetAvailabilityResponse{
		Success:              true,
		ProviderID:           result.ProviderID,
		Date:                 result.Date.Format(domain.DateFormat),
		ExistingAppointments: make([]AppointmentResponse, 0, len(result.Appointments)),
		AvailableSlots:       make([]string, 0, len(result.AvailableSlots)),
	}
	if result.WorkingHours != nil {
		response.WorkingHours = &WorkingHoursResponse{
			Start: string(result.WorkingHours.Start),
			End:   string(result.WorkingHours.End),
		}
	}
	for _, appt := range result.Appointments {
		response.ExistingAppointments = append(response.ExistingAppointments, AppointmentResponse{
			StartTime:       string(appt.StartTime),
			DurationMinutes: appt.EffectiveDuration(),
		})
	}
	for _, slot := range result.AvailableSlots {
		response.AvailableSlots = append(response.AvailableSlots, string(slot))
	}

	h.logger.Info("GET /providers/{id}/availability - provider_id=%d date=%s slots=%d",
		providerID, response.Date, len(response.AvailableSlots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
