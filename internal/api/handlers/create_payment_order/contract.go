package create_payment_order

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/payments/models"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, bookingID int64, userID int64, isAdmin bool) (*models.PaymentOrderResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
