package subscribe_week

import (
	"github.com/m04kA/SMC-ChairReservation/internal/infra/fanout"
)

// Subscriber подписка на топик площадки и недели
type Subscriber interface {
	Subscribe(topic string) (*fanout.Subscription, error)
	Unsubscribe(sub *fanout.Subscription)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
