package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrStayNotFound возвращается, когда размещение не найдено или неактивно
	ErrStayNotFound = errors.New("create_booking: stay not found")

	// ErrTransportationNotFound возвращается, когда транспорт не найден или неактивен
	ErrTransportationNotFound = errors.New("create_booking: transportation not found")

	// ErrSightseeingNotFound возвращается, когда экскурсия не найдена или неактивна
	ErrSightseeingNotFound = errors.New("create_booking: sightseeing not found")

	// ErrNotAvailable возвращается, когда выбранные ресурсы недоступны на диапазон дат
	// Конкретная причина доступна через CapacityError
	ErrNotAvailable = errors.New("create_booking: resources are not available")

	// ErrDateInPast возвращается, когда дата заезда уже прошла
	ErrDateInPast = errors.New("create_booking: check-in date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// CapacityError несет человекочитаемую причину отказа по доступности
// Сопоставляется с ErrNotAvailable через errors.Is
type CapacityError struct {
	Reason string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("create_booking: not available: %s", e.Reason)
}

func (e *CapacityError) Unwrap() error {
	return ErrNotAvailable
}
