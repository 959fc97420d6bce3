package book_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
}

// LocationRepository интерфейс репозитория площадок
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
}

// WindowCalculator интерфейс калькулятора недельного окна
type WindowCalculator interface {
	CurrentWeek(now time.Time) domain.BookingWeek
	CanBookNow(now time.Time, privileged bool) bool
}

// SlotRules интерфейс сетки слотов
type SlotRules interface {
	IsValid(t types.TimeString) bool
}

// EligibilityGate интерфейс проверки интервала между бронированиями
type EligibilityGate interface {
	Check(ctx context.Context, identity string, date time.Time) error
}

// BlockEvaluator интерфейс проверки блокировок
type BlockEvaluator interface {
	IsBlocked(ctx context.Context, locationID int64, date time.Time, t types.TimeString, resource int) (bool, error)
}

// Publisher интерфейс публикации изменений слотов
type Publisher interface {
	Publish(ctx context.Context, event domain.SlotChangedEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics интерфейс счетчиков исходов операций
type Metrics interface {
	IncReservationOutcome(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
