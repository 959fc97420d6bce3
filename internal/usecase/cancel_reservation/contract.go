package cancel_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Void(ctx context.Context, id int64, expectedVersion int64, at time.Time) error
}

// WindowCalculator интерфейс калькулятора недельного окна
type WindowCalculator interface {
	CurrentWeek(now time.Time) domain.BookingWeek
}

// CancellationPolicy интерфейс политики отмены
type CancellationPolicy interface {
	Check(now time.Time, r *domain.Reservation, week domain.BookingWeek) error
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
