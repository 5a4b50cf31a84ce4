package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	"github.com/m04kA/TTA-BookingService/internal/api/middleware"
	updateBooking "github.com/m04kA/TTA-BookingService/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID       = "некорректный ID бронирования"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgNotFound               = "бронирование не найдено"
	msgForbidden              = "доступ запрещен"
	msgNotEditable            = "изменять можно только черновик бронирования"
	msgStayNotFound           = "размещение не найдено"
	msgTransportationNotFound = "транспорт не найден"
	msgSightseeingNotFound    = "экскурсия не найдена"
	msgDateInPast             = "дата заезда уже прошла"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, userID, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var capacityErr *updateBooking.CapacityError

		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("PUT /bookings/{id} - Not available: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, capacityErr.Reason)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrPermissionDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrNotEditable):
			h.logger.Warn("PUT /bookings/{id} - Not editable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotEditable)

		case errors.Is(err, updateBooking.ErrStayNotFound):
			h.logger.Warn("PUT /bookings/{id} - Stay not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgStayNotFound)

		case errors.Is(err, updateBooking.ErrTransportationNotFound):
			h.logger.Warn("PUT /bookings/{id} - Transportation not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgTransportationNotFound)

		case errors.Is(err, updateBooking.ErrSightseeingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Sightseeing not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgSightseeingNotFound)

		case errors.Is(err, updateBooking.ErrDateInPast):
			h.logger.Warn("PUT /bookings/{id} - Date in past: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Draft updated: booking_id=%d, user_id=%d, total=%.2f",
		bookingID, userID, result.Pricing.GrandTotal)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
