package get_tour_package

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	"github.com/m04kA/TTA-BookingService/internal/service/tours"
)

const (
	msgInvalidTourID = "некорректный ID тура"
	msgNotFound      = "тур не найден"
)

type Handler struct {
	service TourService
	logger  Logger
}

func NewHandler(service TourService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tour-packages/{tourId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID, err := strconv.ParseInt(mux.Vars(r)["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /tour-packages/{id} - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	tour, err := h.service.Get(r.Context(), tourID)
	if err != nil {
		switch {
		case errors.Is(err, tours.ErrTourPackageNotFound):
			h.logger.Warn("GET /tour-packages/{id} - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /tour-packages/{id} - Failed: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, tour)
}
