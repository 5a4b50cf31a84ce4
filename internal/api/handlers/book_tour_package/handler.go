package book_tour_package

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	"github.com/m04kA/TTA-BookingService/internal/api/middleware"
	bookTourPackage "github.com/m04kA/TTA-BookingService/internal/usecase/book_tour_package"
)

const (
	msgInvalidTourID      = "некорректный ID тура"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные бронирования"
	msgDateInPast         = "дата заезда не может быть в прошлом"
	msgTourNotFound       = "тур не найден"
	msgMissingUserID      = "отсутствует ID пользователя"
)

type Handler struct {
	useCase BookTourPackageUseCase
	logger  Logger
}

func NewHandler(useCase BookTourPackageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tour-packages/{tourId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID, err := strconv.ParseInt(mux.Vars(r)["tourId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /tour-packages/{id}/book - Invalid tour ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /tour-packages/{id}/book - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req BookTourPackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tour-packages/{id}/book - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tourID, userID)
	if err != nil {
		h.logger.Warn("POST /tour-packages/{id}/book - Invalid check-in date %q: %v", req.CheckIn, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var capacityErr *bookTourPackage.CapacityError

		switch {
		case errors.Is(err, bookTourPackage.ErrTourPackageNotFound):
			h.logger.Warn("POST /tour-packages/{id}/book - Tour not found: tour_id=%d", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, bookTourPackage.ErrDateInPast):
			h.logger.Warn("POST /tour-packages/{id}/book - Check-in in the past: tour_id=%d", tourID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, bookTourPackage.ErrInvalidInput):
			h.logger.Warn("POST /tour-packages/{id}/book - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /tour-packages/{id}/book - Not available: tour_id=%d, reason=%s", tourID, capacityErr.Reason)
			handlers.RespondError(w, http.StatusConflict, capacityErr.Reason)

		default:
			h.logger.Error("POST /tour-packages/{id}/book - Failed: tour_id=%d, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tour-packages/{id}/book - Tour booked: tour_id=%d, booking_id=%d, user_id=%d", tourID, booking.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(booking))
}
