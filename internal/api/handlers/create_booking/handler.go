package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	"github.com/m04kA/TTA-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/TTA-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgStayNotFound           = "размещение не найдено"
	msgTransportationNotFound = "транспорт не найден"
	msgSightseeingNotFound    = "экскурсия не найдена"
	msgDateInPast             = "дата заезда уже прошла"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var capacityErr *createBooking.CapacityError

		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /bookings - Not available: user_id=%d, stay_id=%d", userID, req.StayID)
			handlers.RespondError(w, http.StatusConflict, capacityErr.Reason)

		case errors.Is(err, createBooking.ErrStayNotFound):
			h.logger.Warn("POST /bookings - Stay not found: stay_id=%d", req.StayID)
			handlers.RespondNotFound(w, msgStayNotFound)

		case errors.Is(err, createBooking.ErrTransportationNotFound):
			h.logger.Warn("POST /bookings - Transportation not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgTransportationNotFound)

		case errors.Is(err, createBooking.ErrSightseeingNotFound):
			h.logger.Warn("POST /bookings - Sightseeing not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgSightseeingNotFound)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Draft created: booking_id=%d, user_id=%d, total=%.2f",
		result.ID, userID, result.Pricing.GrandTotal)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
