package fanout

import (
	"context"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// Publisher публикует событие изменения слота в топик площадки и недели
type Publisher interface {
	Publish(ctx context.Context, event domain.SlotChangedEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics счетчики доставки событий
type Metrics interface {
	IncFanoutPublished(transport string)
	IncFanoutDropped()
	SetFanoutSubscribers(n int)
}
