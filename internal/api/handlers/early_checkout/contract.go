package early_checkout

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	EarlyCheckout(ctx context.Context, bookingID int64, req *models.EarlyCheckoutRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
