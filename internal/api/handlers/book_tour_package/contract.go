package book_tour_package

import (
	"context"

	bookTourPackage "github.com/m04kA/TTA-BookingService/internal/usecase/book_tour_package"
)

type BookTourPackageUseCase interface {
	Execute(ctx context.Context, req *bookTourPackage.Request) (*bookTourPackage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
