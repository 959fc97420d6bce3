package fanout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

const (
	transportRedis = "redis"

	// topicPattern совпадает со всеми топиками вида location:{id}:week:{monday}
	topicPattern = "location:*"

	defaultMinBackoff = 500 * time.Millisecond
	defaultMaxBackoff = 30 * time.Second
)

// RedisBridge публикует события в Redis и пересылает события всех инстансов в локальный хаб
// Доставка at-most-once: событие, опубликованное при отсутствии подписки, теряется
type RedisBridge struct {
	client  *redis.Client
	hub     *Hub
	metrics Metrics
	logger  Logger

	// subscribe по умолчанию Run, подменяется в тестах
	subscribe  func(ctx context.Context) error
	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewRedisClient создает клиент Redis
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedisBridge создает мост между Redis pub/sub и локальным хабом
func NewRedisBridge(client *redis.Client, hub *Hub, metrics Metrics, logger Logger) *RedisBridge {
	b := &RedisBridge{
		client:     client,
		hub:        hub,
		metrics:    metrics,
		logger:     logger,
		minBackoff: defaultMinBackoff,
		maxBackoff: defaultMaxBackoff,
	}
	b.subscribe = b.Run
	return b
}

// Publish отправляет событие в канал Redis с именем топика
// Локальные подписчики получат его через Run, как и подписчики других инстансов
func (b *RedisBridge) Publish(ctx context.Context, event domain.SlotChangedEvent) error {
	topic := event.Topic()
	if topic == "" {
		return ErrEmptyTopic
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	if err := b.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("%w: redis publish to %s: %v", ErrPublish, topic, err)
	}

	b.metrics.IncFanoutPublished(transportRedis)
	return nil
}

// Run слушает все топики площадок и пересылает события в локальный хаб до отмены ctx
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.client.PSubscribe(ctx, topicPattern)
	defer pubsub.Close()

	// дожидаемся подтверждения подписки, чтобы ошибки соединения всплыли сразу
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("fanout: redis psubscribe %s: %w", topicPattern, err)
	}
	b.logger.Info("RedisBridge: subscribed to %s", topicPattern)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("fanout: redis subscription channel closed")
			}
			b.forward(msg)
		}
	}
}

// Serve держит подписку до отмены ctx и переподписывается с экспоненциальной задержкой
// События, опубликованные пока подписки нет, теряются
func (b *RedisBridge) Serve(ctx context.Context) {
	delay := b.minBackoff
	for {
		started := time.Now()
		err := b.subscribe(ctx)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			err = errors.New("fanout: redis subscription ended")
		}

		// подписка успела поработать, начинаем задержки заново
		if time.Since(started) > b.maxBackoff {
			delay = b.minBackoff
		}
		b.logger.Error("RedisBridge: subscription lost, retry in %s: %v", delay, err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		delay *= 2
		if delay > b.maxBackoff {
			delay = b.maxBackoff
		}
	}
}

func (b *RedisBridge) forward(msg *redis.Message) {
	var event domain.SlotChangedEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		b.logger.Warn("RedisBridge: skip malformed event on %s: %v", msg.Channel, err)
		return
	}
	b.hub.Deliver(msg.Channel, event)
}

// Ping проверяет соединение с Redis
func (b *RedisBridge) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}
