package payments

import (
	"context"

	"github.com/m04kA/TTA-BookingService/internal/domain"
	"github.com/m04kA/TTA-BookingService/internal/usecase/check_availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetPaymentOrder(ctx context.Context, id int64, orderID string) error
	SetPaymentResult(ctx context.Context, id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus, paymentID *string) error
	SetPaymentStatus(ctx context.Context, id int64, paymentStatus domain.PaymentStatus) error
}

// AvailabilityChecker интерфейс движка проверки доступности
// Успешная оплата подтверждает бронирование, поэтому доступность
// проверяется еще раз перед фиксацией результата
type AvailabilityChecker interface {
	Execute(ctx context.Context, req *check_availability.Request) (*check_availability.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для инкремента счетчика верификаций (может быть nil)
type Metrics interface {
	IncPaymentVerification(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
