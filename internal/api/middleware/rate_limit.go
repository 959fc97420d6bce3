package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, попробуйте позже"

// RateLimiter ограничивает число запросов одного пользователя в скользящем окне
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	logger   Logger
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter создает лимитер и запускает фоновую очистку устаревших записей
func NewRateLimiter(limit int, window time.Duration, logger Logger) *RateLimiter {
	rl := newRateLimiter(limit, window, time.Now, logger)
	go rl.cleanup()
	return rl
}

func newRateLimiter(limit int, window time.Duration, now func() time.Time, logger Logger) *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      now,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Allow регистрирует запрос и возвращает false, если лимит в окне исчерпан
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := rl.requests[key][:0]
	for _, ts := range rl.requests[key] {
		if now.Sub(ts) < rl.window {
			valid = append(valid, ts)
		}
	}

	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false
	}

	rl.requests[key] = append(valid, now)
	return true
}

// Stop останавливает фоновую очистку
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := rl.now()
			rl.mu.Lock()
			for key, timestamps := range rl.requests {
				if len(timestamps) == 0 || now.Sub(timestamps[len(timestamps)-1]) >= rl.window {
					delete(rl.requests, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

// Middleware отвечает 429, если пользователь превысил лимит. Должен стоять после Auth
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, _ := GetIdentity(r.Context())
		if !rl.Allow(identity.ID) {
			rl.logger.Warn("rate limit exceeded: request_id=%s, identity=%s, path=%s",
				GetRequestID(r.Context()), identity.ID, r.URL.Path)
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
