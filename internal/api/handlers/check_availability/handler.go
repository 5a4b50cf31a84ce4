package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	checkAvailability "github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

const (
	msgInvalidQuery           = "некорректные параметры запроса"
	msgStayNotFound           = "размещение не найдено"
	msgTransportationNotFound = "транспорт не найден"
	msgSightseeingNotFound    = "экскурсия не найдена"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrStayNotFound):
			h.logger.Warn("GET /availability - Stay not found: stay_id=%d", req.StayID)
			handlers.RespondNotFound(w, msgStayNotFound)

		case errors.Is(err, checkAvailability.ErrTransportationNotFound):
			h.logger.Warn("GET /availability - Transportation not found: stay_id=%d", req.StayID)
			handlers.RespondNotFound(w, msgTransportationNotFound)

		case errors.Is(err, checkAvailability.ErrSightseeingNotFound):
			h.logger.Warn("GET /availability - Sightseeing not found: stay_id=%d", req.StayID)
			handlers.RespondNotFound(w, msgSightseeingNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /availability - Failed to check availability: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Checked: stay_id=%d, available=%v", req.StayID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, AvailabilityResponse{
		Available: result.Available,
		Reason:    result.Reason,
	})
}
