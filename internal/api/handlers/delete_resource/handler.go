package delete_resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	"github.com/m04kA/TTA-BookingService/internal/api/middleware"
	"github.com/m04kA/TTA-BookingService/internal/service/resources"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidType       = "некорректный тип ресурса"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "удаление ресурсов доступно только администратору"
	msgNotFound          = "ресурс не найден"
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

// Handle DELETE /api/v1/resources/{type}/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /resources/{type}/{id} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	if _, ok := middleware.GetUserID(r.Context()); !ok {
		h.logger.Warn("DELETE /resources/{type}/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), vars["type"], resourceID, middleware.IsAdmin(r.Context())); err != nil {
		switch {
		case errors.Is(err, resources.ErrAccessDenied):
			h.logger.Warn("DELETE /resources/{type}/{id} - Access denied: type=%s, id=%d", vars["type"], resourceID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, resources.ErrInvalidInput):
			h.logger.Warn("DELETE /resources/{type}/{id} - Invalid type %q", vars["type"])
			handlers.RespondBadRequest(w, msgInvalidType)

		case errors.Is(err, resources.ErrResourceNotFound):
			h.logger.Warn("DELETE /resources/{type}/{id} - Not found: type=%s, id=%d", vars["type"], resourceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /resources/{type}/{id} - Failed: type=%s, id=%d, error=%v", vars["type"], resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{type}/{id} - Resource deleted: type=%s, id=%d", vars["type"], resourceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
