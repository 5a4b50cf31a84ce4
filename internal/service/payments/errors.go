package payments

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrNotPayable возвращается, когда бронирование не в оплачиваемом статусе
	ErrNotPayable = errors.New("booking is not payable in its current status")

	// ErrAlreadyPaid возвращается при повторной попытке оплаты
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrNoPaymentOrder возвращается, когда платежный ордер еще не создан
	ErrNoPaymentOrder = errors.New("payment order has not been created")

	// ErrOrderMismatch возвращается, когда orderID не совпадает с выданным
	ErrOrderMismatch = errors.New("payment order mismatch")

	// ErrInvalidSignature возвращается при неверной подписи платежа
	ErrInvalidSignature = errors.New("invalid payment signature")

	// ErrNotAvailable возвращается, когда вместимость потеряна к моменту оплаты
	ErrNotAvailable = errors.New("resources are no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// CapacityError несет человекочитаемую причину потери вместимости
// Сопоставляется с ErrNotAvailable через errors.Is
type CapacityError struct {
	Reason string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("payments: not available: %s", e.Reason)
}

func (e *CapacityError) Unwrap() error {
	return ErrNotAvailable
}
