package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var istanbul = time.FixedZone("TRT", 3*60*60)

func newTestCalculator(t *testing.T) *Calculator {
	t.Helper()
	calc, err := NewCalculator(DefaultSettings(istanbul))
	require.NoError(t, err)
	return calc
}

func at(day, hour, minute, second int) time.Time {
	return time.Date(2025, time.January, day, hour, minute, second, 0, istanbul)
}

func date(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func TestCalculator_CurrentWeek(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name       string
		now        time.Time
		wantMonday time.Time
		wantAnchor time.Time
	}{
		{name: "friday after early open", now: at(3, 8, 0, 0), wantMonday: date(6), wantAnchor: date(3)},
		{name: "friday before early open", now: at(3, 7, 59, 59), wantMonday: time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), wantAnchor: time.Date(2024, time.December, 27, 0, 0, 0, 0, time.UTC)},
		{name: "saturday", now: at(4, 12, 0, 0), wantMonday: date(6), wantAnchor: date(3)},
		{name: "monday of active week", now: at(6, 9, 0, 0), wantMonday: date(6), wantAnchor: date(3)},
		{name: "thursday after close", now: at(9, 18, 0, 0), wantMonday: date(6), wantAnchor: date(3)},
		{name: "next friday", now: at(10, 8, 30, 0), wantMonday: date(13), wantAnchor: date(10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := calc.CurrentWeek(tt.now)

			assert.Equal(t, tt.wantMonday, week.Monday)
			assert.Equal(t, tt.wantAnchor, week.Anchor)
			assert.Equal(t, tt.wantMonday.AddDate(0, 0, 6), week.Sunday)
			assert.Equal(t, 1, domain.ISOWeekday(week.Monday))
			assert.Equal(t, 7, domain.ISOWeekday(week.Sunday))
			assert.True(t, week.WindowOpen.Before(week.WindowClose))
		})
	}
}

func TestCalculator_WindowBoundaries(t *testing.T) {
	calc := newTestCalculator(t)
	week := calc.CurrentWeek(at(3, 12, 0, 0))

	assert.Equal(t, at(3, 8, 0, 0), week.WindowOpen)
	assert.Equal(t, at(3, 8, 30, 0), week.GeneralOpen)
	assert.Equal(t, at(9, 17, 0, 0), week.WindowClose)
}

func TestCalculator_IsWindowOpen(t *testing.T) {
	calc := newTestCalculator(t)

	assert.False(t, calc.IsWindowOpen(at(3, 7, 59, 59)))
	assert.True(t, calc.IsWindowOpen(at(3, 8, 0, 0)))
	assert.True(t, calc.IsWindowOpen(at(7, 10, 0, 0)))
	assert.True(t, calc.IsWindowOpen(at(9, 16, 59, 59)))
	assert.False(t, calc.IsWindowOpen(at(9, 17, 0, 0)))
	assert.False(t, calc.IsWindowOpen(at(10, 7, 0, 0)), "friday before next opening")
}

func TestCalculator_CanBookNow(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name       string
		now        time.Time
		privileged bool
		want       bool
	}{
		{name: "early sub-window privileged", now: at(3, 8, 10, 0), privileged: true, want: true},
		{name: "early sub-window regular", now: at(3, 8, 10, 0), privileged: false, want: false},
		{name: "general open regular", now: at(3, 8, 30, 0), privileged: false, want: true},
		{name: "before open privileged", now: at(3, 7, 59, 0), privileged: true, want: false},
		{name: "after close privileged", now: at(9, 17, 0, 0), privileged: true, want: false},
		{name: "midweek regular", now: at(8, 11, 0, 0), privileged: false, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.CanBookNow(tt.now, tt.privileged))
		})
	}
}

func TestCalculator_MondayOpening(t *testing.T) {
	settings := DefaultSettings(istanbul)
	settings.OpeningWeekday = 1
	settings.CloseDayOffset = 6

	calc, err := NewCalculator(settings)
	require.NoError(t, err)

	week := calc.CurrentWeek(at(6, 9, 0, 0))

	assert.Equal(t, date(6), week.Anchor)
	assert.Equal(t, date(13), week.Monday)
}

func TestCalculator_SundayOpening(t *testing.T) {
	settings := DefaultSettings(istanbul)
	settings.OpeningWeekday = 7

	calc, err := NewCalculator(settings)
	require.NoError(t, err)

	tests := []struct {
		name       string
		now        time.Time
		wantAnchor time.Time
	}{
		{name: "sunday after early open", now: at(5, 9, 0, 0), wantAnchor: date(5)},
		{name: "monday after opening", now: at(6, 9, 0, 0), wantAnchor: date(5)},
		{name: "saturday before next opening", now: at(11, 23, 0, 0), wantAnchor: date(5)},
		{name: "sunday before early open", now: at(12, 7, 0, 0), wantAnchor: date(5)},
		{name: "next sunday", now: at(12, 8, 0, 0), wantAnchor: date(12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week := calc.CurrentWeek(tt.now)
			assert.Equal(t, tt.wantAnchor, week.Anchor)
			assert.Equal(t, tt.wantAnchor.AddDate(0, 0, 1), week.Monday)
		})
	}
}

func TestNewCalculator_InvalidSettings(t *testing.T) {
	settings := DefaultSettings(istanbul)
	settings.GeneralOpen = "07:00"

	_, err := NewCalculator(settings)
	assert.Error(t, err)

	settings = DefaultSettings(istanbul)
	settings.OpeningWeekday = 0
	_, err = NewCalculator(settings)
	assert.Error(t, err)

	settings = DefaultSettings(nil)
	_, err = NewCalculator(settings)
	assert.Error(t, err)
}
