package fanout

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

const transportLocal = "local"

// Subscription подписка одного клиента на топик
type Subscription struct {
	ID    string
	Topic string

	ch chan domain.SlotChangedEvent
}

// Events канал событий подписки, закрывается при отписке
func (s *Subscription) Events() <-chan domain.SlotChangedEvent {
	return s.ch
}

// Hub рассылает события подписчикам внутри процесса
// Публикация никогда не блокируется: если буфер подписчика полон, событие для него теряется
type Hub struct {
	mu      sync.RWMutex
	topics  map[string]map[string]*Subscription
	total   int
	closed  bool
	buffer  int
	metrics Metrics
	logger  Logger
}

// NewHub создает хаб с буфером bufferSize событий на подписчика
func NewHub(bufferSize int, metrics Metrics, logger Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Hub{
		topics:  make(map[string]map[string]*Subscription),
		buffer:  bufferSize,
		metrics: metrics,
		logger:  logger,
	}
}

// Subscribe подписывает нового клиента на топик
func (h *Hub) Subscribe(topic string) (*Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}

	sub := &Subscription{
		ID:    uuid.NewString(),
		Topic: topic,
		ch:    make(chan domain.SlotChangedEvent, h.buffer),
	}

	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[string]*Subscription)
		h.topics[topic] = subs
	}
	subs[sub.ID] = sub
	h.total++
	h.metrics.SetFanoutSubscribers(h.total)

	h.logger.Info("Subscribe: subscriber=%s topic=%s", sub.ID, topic)
	return sub, nil
}

// Unsubscribe удаляет подписку и закрывает ее канал. Повторный вызов безопасен
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.Topic]
	if !ok {
		return
	}
	if _, ok := subs[sub.ID]; !ok {
		return
	}

	delete(subs, sub.ID)
	if len(subs) == 0 {
		delete(h.topics, sub.Topic)
	}
	close(sub.ch)
	h.total--
	h.metrics.SetFanoutSubscribers(h.total)

	h.logger.Info("Unsubscribe: subscriber=%s topic=%s", sub.ID, sub.Topic)
}

// Publish доставляет событие подписчикам топика в этом процессе
func (h *Hub) Publish(_ context.Context, event domain.SlotChangedEvent) error {
	topic := event.Topic()
	if topic == "" {
		return ErrEmptyTopic
	}
	h.Deliver(topic, event)
	h.metrics.IncFanoutPublished(transportLocal)
	return nil
}

// Deliver рассылает событие всем подписчикам топика без блокировки
// Возвращает количество подписчиков, получивших событие
func (h *Hub) Deliver(topic string, event domain.SlotChangedEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, sub := range h.topics[topic] {
		select {
		case sub.ch <- event:
			delivered++
		default:
			h.metrics.IncFanoutDropped()
			h.logger.Warn("Deliver: subscriber=%s topic=%s buffer is full, event dropped", sub.ID, topic)
		}
	}
	return delivered
}

// SubscriberCount возвращает число подписчиков топика
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Close отписывает всех и запрещает новые подписки
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for topic, subs := range h.topics {
		for _, sub := range subs {
			close(sub.ch)
		}
		delete(h.topics, topic)
	}
	h.total = 0
	h.metrics.SetFanoutSubscribers(0)
}
