package domain

import (
	"fmt"
	"time"
)

// BookingWeek is the single Monday–Sunday range currently open for booking.
// It is derived from server time on every request and never persisted.
type BookingWeek struct {
	Monday      time.Time
	Sunday      time.Time
	Anchor      time.Time // день открытия окна
	WindowOpen  time.Time // открытие для привилегированных
	GeneralOpen time.Time // открытие для всех
	WindowClose time.Time
}

// Contains reports whether date falls within [Monday, Sunday]
func (w BookingWeek) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(w.Monday) && !d.After(w.Sunday)
}

// Days returns the seven dates of the week starting on Monday
func (w BookingWeek) Days() []time.Time {
	days := make([]time.Time, 0, 7)
	for d := w.Monday; !d.After(w.Sunday); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// WeekOf returns the Monday–Sunday range containing date.
// Only Monday and Sunday are set; window instants belong to the active week alone.
func WeekOf(date time.Time) BookingWeek {
	monday := DateOf(date).AddDate(0, 0, 1-ISOWeekday(date))
	return BookingWeek{Monday: monday, Sunday: monday.AddDate(0, 0, 6)}
}

// WeekTopic returns the fanout topic for a location and active week
func WeekTopic(locationID int64, monday time.Time) string {
	return fmt.Sprintf("location:%d:week:%s", locationID, monday.Format(DateFormat))
}

// DateOf strips the clock part and returns the civil date as midnight UTC.
// All dates in the domain are kept in this form so they compare independently of timezone.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b denote the same civil date
func SameDate(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// DaysBetween returns the number of civil days from a to b (negative if b is earlier)
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)).Hours() / 24)
}

// ISOWeekday returns 1 (Monday) .. 7 (Sunday).
// This is the only place weekday numbering is converted.
func ISOWeekday(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
