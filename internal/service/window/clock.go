package window

import "time"

// Clock источник текущего времени в таймзоне оператора
type Clock interface {
	Now() time.Time
}

// SystemClock реальные часы, приведенные к таймзоне оператора
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock создает часы для указанной таймзоны
func NewSystemClock(loc *time.Location) *SystemClock {
	return &SystemClock{loc: loc}
}

// Now возвращает текущее время в таймзоне оператора
func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock всегда возвращает одно и то же время (для тестов)
type FixedClock struct {
	now time.Time
}

// NewFixedClock создает часы, остановленные на t
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

func (c *FixedClock) Now() time.Time {
	return c.now
}

// Set переставляет часы
func (c *FixedClock) Set(t time.Time) {
	c.now = t
}
