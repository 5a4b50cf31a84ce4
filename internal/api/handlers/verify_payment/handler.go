package verify_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/TTA-BookingService/internal/api/handlers"
	"github.com/m04kA/TTA-BookingService/internal/api/middleware"
	"github.com/m04kA/TTA-BookingService/internal/service/payments"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNoOrder            = "платежный ордер не создан"
	msgOrderMismatch      = "идентификатор ордера не совпадает"
	msgInvalidSignature   = "некорректная подпись платежа"
	msgAlreadyPaid        = "бронирование уже оплачено"
	msgNotPayable         = "бронирование не ожидает оплаты"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment-verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment-verify - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payment-verify - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req VerifyPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment-verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.OrderID == "" || req.PaymentID == "" {
		h.logger.Warn("POST /bookings/{id}/payment-verify - Missing order or payment ID: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyPayment(r.Context(), bookingID, req.ToServiceRequest(userID, middleware.IsAdmin(r.Context())))
	if err != nil {
		var capacityErr *payments.CapacityError

		switch {
		case errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/payment-verify - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/payment-verify - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrNoPaymentOrder):
			h.logger.Warn("POST /bookings/{id}/payment-verify - No payment order: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNoOrder)

		case errors.Is(err, payments.ErrOrderMismatch):
			h.logger.Warn("POST /bookings/{id}/payment-verify - Order mismatch: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgOrderMismatch)

		case errors.Is(err, payments.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/{id}/payment-verify - Already paid: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)

		case errors.Is(err, payments.ErrNotPayable):
			h.logger.Warn("POST /bookings/{id}/payment-verify - Not payable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotPayable)

		case errors.Is(err, payments.ErrInvalidSignature):
			h.logger.Warn("POST /bookings/{id}/payment-verify - Invalid signature: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSignature)

		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /bookings/{id}/payment-verify - Capacity lost: booking_id=%d, reason=%s", bookingID, capacityErr.Reason)
			handlers.RespondError(w, http.StatusConflict, capacityErr.Reason)

		default:
			h.logger.Error("POST /bookings/{id}/payment-verify - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/payment-verify - Payment verified: booking_id=%d, payment_id=%s", bookingID, req.PaymentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
