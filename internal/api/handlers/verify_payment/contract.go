package verify_payment

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/service/payments/models"
)

type PaymentService interface {
	VerifyPayment(ctx context.Context, bookingID int64, req *models.VerifyPaymentRequest) (*models.VerifyPaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
