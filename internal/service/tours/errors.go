package tours

import "errors"

var (
	// ErrTourPackageNotFound возвращается, когда тур не найден
	ErrTourPackageNotFound = errors.New("tour package not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
