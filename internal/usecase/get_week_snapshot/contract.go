package get_week_snapshot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/internal/service/blocks"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// LocationRepository интерфейс репозитория площадок
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// WindowCalculator интерфейс калькулятора недельного окна
type WindowCalculator interface {
	CurrentWeek(now time.Time) domain.BookingWeek
	IsWindowOpen(now time.Time) bool
	CanBookNow(now time.Time, privileged bool) bool
}

// SlotRules интерфейс сетки слотов
type SlotRules interface {
	EnumerateDailySlots() []types.TimeString
}

// BlockLoader загружает блокировки площадки за период одним запросом
type BlockLoader interface {
	LoadRange(ctx context.Context, locationID int64, from, to time.Time) (*blocks.BlockSet, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
