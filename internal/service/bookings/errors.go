package bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование уже в терминальном статусе
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotAvailable возвращается, когда вместимость потеряна между созданием
	// черновика и переходом в booked
	ErrNotAvailable = errors.New("resources are no longer available")

	// ErrNotPaid возвращается при попытке вернуть средства по неоплаченному бронированию
	ErrNotPaid = errors.New("booking is not paid")

	// ErrInvalidCheckout возвращается при некорректной дате досрочного выезда
	ErrInvalidCheckout = errors.New("invalid early checkout date")

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
	return fmt.Sprintf("bookings: not available: %s", e.Reason)
}

func (e *CapacityError) Unwrap() error {
	return ErrNotAvailable
}
