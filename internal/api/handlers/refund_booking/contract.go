package refund_booking

import "context"

type BookingService interface {
	Refund(ctx context.Context, bookingID int64, userID int64, isAdmin bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
