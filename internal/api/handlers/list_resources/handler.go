package list_resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	"github.com/m04kA/TTA-BookingService/internal/service/resources"
	"github.com/m04kA/TTA-BookingService/internal/service/resources/models"
)

const (
	msgInvalidMaxPrice = "некорректное значение maxPrice"
	msgInvalidType     = "некорректный тип ресурса"
)

type Handler struct {
	service ResourceService
	logger  Logger
}

func NewHandler(service ResourceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources?type=&location=&maxPrice=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.FindResourcesRequest{}

	query := r.URL.Query()

	if v := query.Get("type"); v != "" {
		req.Type = &v
	}

	if v := query.Get("location"); v != "" {
		req.Location = &v
	}

	if v := query.Get("maxPrice"); v != "" {
		maxPrice, err := strconv.ParseFloat(v, 64)
		if err != nil {
			h.logger.Warn("GET /resources - Invalid maxPrice %q: %v", v, err)
			handlers.RespondBadRequest(w, msgInvalidMaxPrice)
			return
		}
		req.MaxPrice = &maxPrice
	}

	result, err := h.service.Find(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("GET /resources - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidType)

		default:
			h.logger.Error("GET /resources - Failed to find resources: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources - Found %d resources", len(result.Resources))
	handlers.RespondJSON(w, http.StatusOK, result)
}
