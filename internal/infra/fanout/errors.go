package fanout

import "errors"

var (
	// ErrHubClosed возвращается при подписке на остановленный хаб
	ErrHubClosed = errors.New("fanout: hub is closed")

	// ErrEmptyTopic возвращается, если у события не удалось вычислить топик
	ErrEmptyTopic = errors.New("fanout: empty topic")

	// ErrPublish возвращается при ошибке публикации во внешний брокер
	ErrPublish = errors.New("fanout: publish failed")
)
