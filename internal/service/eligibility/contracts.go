package eligibility

import (
	"context"
	"time"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	// LatestActiveDate возвращает дату самого позднего активного бронирования пользователя или nil
	LatestActiveDate(ctx context.Context, identity string) (*time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
