package get_quote

import "errors"

var (
	// ErrStayNotFound возвращается, когда размещение не найдено или неактивно
	ErrStayNotFound = errors.New("get_quote: stay not found")

	// ErrTransportationNotFound возвращается, когда транспорт не найден или неактивен
	ErrTransportationNotFound = errors.New("get_quote: transportation not found")

	// ErrSightseeingNotFound возвращается, когда экскурсия не найдена или неактивна
	ErrSightseeingNotFound = errors.New("get_quote: sightseeing not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
