package list_tour_packages

import (
	"net/http"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
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

// Handle GET /api/v1/tour-packages
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /tour-packages - Failed to list tours: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tour-packages - Found %d tours", len(result.TourPackages))
	handlers.RespondJSON(w, http.StatusOK, result)
}
