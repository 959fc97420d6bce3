package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

func date(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestWeekOf(t *testing.T) {
	for day := 6; day <= 12; day++ {
		week := WeekOf(date(day))
		assert.Equal(t, date(6), week.Monday, "day %d", day)
		assert.Equal(t, date(12), week.Sunday, "day %d", day)
	}
	assert.Equal(t, date(13), WeekOf(date(13)).Monday)
	assert.Len(t, WeekOf(date(8)).Days(), 7)
}

func TestISOWeekdayAndDaysBetween(t *testing.T) {
	assert.Equal(t, 1, ISOWeekday(date(6)))
	assert.Equal(t, 7, ISOWeekday(date(12)))
	assert.Equal(t, 14, DaysBetween(date(6), date(20)))
	assert.Equal(t, -3, DaysBetween(date(9), date(6)))
}

func TestAdHocBlock_Covers(t *testing.T) {
	b := &AdHocBlock{Date: date(6), StartTime: "08:30", EndTime: "10:00", Resource: intPtr(2), Status: BlockActive}

	assert.True(t, b.Covers(date(6), "08:30", 2))
	assert.True(t, b.Covers(date(6), "09:30", 2))
	assert.False(t, b.Covers(date(6), "10:00", 2), "end is exclusive")
	assert.False(t, b.Covers(date(6), "08:30", 1))
	assert.False(t, b.Covers(date(7), "08:30", 2))

	b.Status = BlockDisabled
	assert.False(t, b.Covers(date(6), "08:30", 2))
}

func TestAdHocBlock_CoversUntilEndOfDay(t *testing.T) {
	var end types.TimeString
	require.NoError(t, end.Scan("24:00:00"))

	b := &AdHocBlock{Date: date(6), StartTime: "17:00", EndTime: end, Status: BlockActive}

	assert.True(t, b.Covers(date(6), "17:00", 1))
	assert.True(t, b.Covers(date(6), "23:30", 1))
	assert.False(t, b.Covers(date(6), "16:30", 1))
	assert.False(t, b.Covers(date(7), "08:30", 1))
}

func TestRecurringBlock_CoversAndValidate(t *testing.T) {
	daily := &RecurringBlock{Kind: RecurrenceDaily, StartTime: "12:00", EndTime: "13:30", Status: BlockActive}
	require.NoError(t, daily.Validate())
	assert.True(t, daily.Covers(date(11), "13:00", 5))

	weekly := &RecurringBlock{Kind: RecurrenceWeekly, Weekday: intPtr(3), StartTime: "08:30", EndTime: "17:00", Status: BlockActive}
	require.NoError(t, weekly.Validate())
	assert.True(t, weekly.Covers(date(8), "16:30", 1))
	assert.False(t, weekly.Covers(date(9), "16:30", 1))

	assert.ErrorIs(t, (&RecurringBlock{Kind: RecurrenceDaily, Weekday: intPtr(1)}).Validate(), ErrInvalidRecurrence)
	assert.ErrorIs(t, (&RecurringBlock{Kind: RecurrenceWeekly}).Validate(), ErrInvalidRecurrence)
	assert.ErrorIs(t, (&RecurringBlock{Kind: RecurrenceWeekly, Weekday: intPtr(8)}).Validate(), ErrInvalidRecurrence)
}

func TestReservation_Void(t *testing.T) {
	r := &Reservation{Status: ReservationActive, Version: 1}
	at := time.Date(2025, time.January, 7, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Void(at))
	assert.Equal(t, ReservationVoided, r.Status)
	assert.Equal(t, int64(2), r.Version)
	require.NotNil(t, r.VoidedAt)
	assert.Equal(t, at, *r.VoidedAt)

	assert.ErrorIs(t, r.Void(at), ErrReservationNotActive)
}

func TestOutcomeAndReason(t *testing.T) {
	sentinel := fmt.Errorf("%w: test: too late", ErrPolicyViolation)
	policy := NewPolicyError(sentinel, "Слишком поздно")

	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomePolicy, Outcome(policy))
	assert.Equal(t, OutcomeConflict, Outcome(fmt.Errorf("%w: x", ErrConflict)))
	assert.Equal(t, OutcomeError, Outcome(fmt.Errorf("boom")))

	assert.ErrorIs(t, fmt.Errorf("wrap: %w", policy), sentinel)
	assert.Equal(t, "Слишком поздно", ReasonOf(fmt.Errorf("wrap: %w", policy)))
	assert.Empty(t, ReasonOf(sentinel))
}

func TestSlotChangedEvent_Topic(t *testing.T) {
	key := SlotKey{LocationID: 4, Date: date(8), StartTime: types.MustTimeString("09:00"), Resource: 1}
	event := NewSlotChangedEvent(key, WeekOf(date(8)), SlotBooked)

	assert.Equal(t, "location:4:week:2025-01-06", event.Topic())
	assert.Equal(t, "2025-01-08", event.Date)
	assert.Equal(t, "09:00", event.StartTime)
}

func TestIdentity_Label(t *testing.T) {
	assert.Equal(t, "Ayşe", NewIdentity("u1", "Ayşe").Label())
	assert.Equal(t, "u1", NewIdentity("u1", "").Label())
	assert.False(t, NewIdentity("u1", "", "").IsPrivileged())
}
