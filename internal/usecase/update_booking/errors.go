package update_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrPermissionDenied возвращается при попытке изменить чужое бронирование
	ErrPermissionDenied = errors.New("update_booking: permission denied")

	// ErrNotEditable возвращается, когда бронирование уже не в статусе черновика
	ErrNotEditable = errors.New("update_booking: only draft bookings can be edited")

	// ErrStayNotFound возвращается, когда размещение не найдено или неактивно
	ErrStayNotFound = errors.New("update_booking: stay not found")

	// ErrTransportationNotFound возвращается, когда транспорт не найден или неактивен
	ErrTransportationNotFound = errors.New("update_booking: transportation not found")

	// ErrSightseeingNotFound возвращается, когда экскурсия не найдена или неактивна
	ErrSightseeingNotFound = errors.New("update_booking: sightseeing not found")

	// ErrNotAvailable возвращается, когда новый состав недоступен на новые даты
	ErrNotAvailable = errors.New("update_booking: resources are not available")

	// ErrDateInPast возвращается, когда новая дата заезда уже прошла
	ErrDateInPast = errors.New("update_booking: check-in date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)

// CapacityError несет человекочитаемую причину отказа по доступности
// Сопоставляется с ErrNotAvailable через errors.Is
type CapacityError struct {
	Reason string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("update_booking: not available: %s", e.Reason)
}

func (e *CapacityError) Unwrap() error {
	return ErrNotAvailable
}
