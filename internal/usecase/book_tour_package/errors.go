package book_tour_package

import (
	"errors"
	"fmt"
)

var (
	// ErrTourPackageNotFound возвращается, когда тур не найден или неактивен
	ErrTourPackageNotFound = errors.New("book_tour_package: tour package not found")

	// ErrNotAvailable возвращается, когда состав тура недоступен на диапазон дат
	ErrNotAvailable = errors.New("book_tour_package: tour package is not available")

	// ErrDateInPast возвращается, когда дата заезда уже прошла
	ErrDateInPast = errors.New("book_tour_package: check-in date is in the past")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_tour_package: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_tour_package: internal error")
)

// CapacityError несет человекочитаемую причину отказа по доступности
// Сопоставляется с ErrNotAvailable через errors.Is
type CapacityError struct {
	Reason string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("book_tour_package: not available: %s", e.Reason)
}

func (e *CapacityError) Unwrap() error {
	return ErrNotAvailable
}
