package check_restriction

import (
	"errors"
	"net/http"
	"time"

	"github.com/ruedapp/RuedApp-CoreService/internal/api/handlers"
	"github.com/ruedapp/RuedApp-CoreService/internal/domain"
	checkRestriction "github.com/ruedapp/RuedApp-CoreService/internal/usecase/check_restriction"
)

const (
	msgMissingPlate = "falta la placa del vehículo"
	msgInvalidPlate = "placa inválida"
	msgInvalidDate  = "formato de fecha inválido, se espera YYYY-MM-DD"
)

type Handler struct {
	useCase CheckRestrictionUseCase
	logger  Logger
}

func NewHandler(useCase CheckRestrictionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/restrictions/check?plate=ABC12D&date=2026-08-31
// Without a date the verdict is computed for today.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	plate := r.URL.Query().Get("plate")
	if plate == "" {
		h.logger.Warn("GET /restrictions/check - Missing plate")
		handlers.RespondBadRequest(w, msgMissingPlate)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /restrictions/check - Invalid date %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	result, err := h.useCase.Execute(r.Context(), &checkRestriction.Request{
		Plate: plate,
		Date:  date,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkRestriction.ErrInvalidPlate):
			h.logger.Warn("GET /restrictions/check - Invalid plate: plate=%s", plate)
			handlers.RespondBadRequest(w, msgInvalidPlate)

		case errors.Is(err, checkRestriction.ErrInvalidInput):
			h.logger.Warn("GET /restrictions/check - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /restrictions/check - Failed: plate=%s, error=%v", plate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	windows := make([]TimeWindowResponse, 0, len(result.Windows))
	for _, window := range result.Windows {
		windows = append(windows, TimeWindowResponse{
			Start: string(window.Start),
			End:   string(window.End),
		})
	}

	h.logger.Info("GET /restrictions/check - plate=%s date=%s restricted=%v",
		result.Plate, result.Date.Format(domain.DateFormat), result.Restricted)
	handlers.RespondJSON(w, http.StatusOK, CheckRestrictionResponse{
		Success:           true,
		Plate:             result.Plate,
		Date:              result.Date.Format(domain.DateFormat),
		LastDigit:         result.LastDigit,
		Restricted:        result.Restricted,
		RestrictedWindows: windows,
	})
}
