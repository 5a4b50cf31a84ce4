package check_availability

import "errors"

var (
	// ErrStayNotFound возвращается, когда размещение не найдено или неактивно
	// Отсутствие ресурса - ошибка входных данных, а не отказ по вместимости
	ErrStayNotFound = errors.New("check_availability: stay not found")

	// ErrTransportationNotFound возвращается, когда транспорт не найден или неактивен
	ErrTransportationNotFound = errors.New("check_availability: transportation not found")

	// ErrSightseeingNotFound возвращается, когда экскурсия не найдена или неактивна
	ErrSightseeingNotFound = errors.New("check_availability: sightseeing not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
