package book_reservation

import (
	"context"

	bookReservation "github.com/m04kA/SMC-ChairReservation/internal/usecase/book_reservation"
)

type BookReservationUseCase interface {
	Execute(ctx context.Context, req *bookReservation.Request) (*bookReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
