package book_booking

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	Book(ctx context.Context, bookingID int64, userID int64, isAdmin bool) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
