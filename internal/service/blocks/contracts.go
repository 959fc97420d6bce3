package blocks

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	ListAdHoc(ctx context.Context, locationID int64, from, to time.Time) ([]*domain.AdHocBlock, error)
	ListRecurring(ctx context.Context, locationID int64) ([]*domain.RecurringBlock, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
