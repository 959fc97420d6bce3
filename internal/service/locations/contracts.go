package locations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// LocationRepository интерфейс репозитория площадок
type LocationRepository interface {
	ListActive(ctx context.Context) ([]*domain.Location, error)
}

// WindowCalculator интерфейс калькулятора недельного окна
type WindowCalculator interface {
	CurrentWeek(now time.Time) domain.BookingWeek
	IsWindowOpen(now time.Time) bool
	CanBookNow(now time.Time, privileged bool) bool
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
