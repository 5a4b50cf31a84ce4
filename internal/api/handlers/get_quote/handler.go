package get_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	getQuote "github.com/m04kA/TTA-BookingService/internal/usecase/get_quote"
)

const (
	msgInvalidQuery           = "некорректные параметры запроса"
	msgStayNotFound           = "размещение не найдено"
	msgTransportationNotFound = "транспорт не найден"
	msgSightseeingNotFound    = "экскурсия не найдена"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /quote - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrStayNotFound):
			h.logger.Warn("GET /quote - Stay not found: stay_id=%d", req.StayID)
			handlers.RespondNotFound(w, msgStayNotFound)

		case errors.Is(err, getQuote.ErrTransportationNotFound):
			h.logger.Warn("GET /quote - Transportation not found: stay_id=%d", req.StayID)
			handlers.RespondNotFound(w, msgTransportationNotFound)

		case errors.Is(err, getQuote.ErrSightseeingNotFound):
			h.logger.Warn("GET /quote - Sightseeing not found: stay_id=%d", req.StayID)
			handlers.RespondNotFound(w, msgSightseeingNotFound)

		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /quote - Failed to get quote: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /quote - Quoted: stay_id=%d, available=%v", req.StayID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
