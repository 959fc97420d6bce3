package domain

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// BlockStatus represents whether a closure is in force.
// Disabling is terminal in practice; a new block is created instead of re-enabling.
type BlockStatus string

const (
	BlockActive   BlockStatus = "active"
	BlockDisabled BlockStatus = "disabled"
)

// RecurrenceKind defines how often a recurring block repeats
type RecurrenceKind string

const (
	RecurrenceDaily  RecurrenceKind = "daily"
	RecurrenceWeekly RecurrenceKind = "weekly"
)

// AdHocBlock is a one-off closure of a time range on a specific date
type AdHocBlock struct {
	ID         int64
	LocationID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString // exclusive
	Resource   *int             // nil = all resources
	Reason     string
	Status     BlockStatus
}

// Covers reports whether the block closes the given cell
func (b *AdHocBlock) Covers(date time.Time, t types.TimeString, resource int) bool {
	return b.Status == BlockActive &&
		SameDate(b.Date, date) &&
		resourceMatches(b.Resource, resource) &&
		t.InRange(b.StartTime, b.EndTime)
}

// RecurringBlock is a standing closure repeating daily or on one ISO weekday
type RecurringBlock struct {
	ID         int64
	LocationID int64
	Kind       RecurrenceKind
	Weekday    *int // ISO 1 (Mon)..7 (Sun), only for weekly blocks
	StartTime  types.TimeString
	EndTime    types.TimeString // exclusive
	Resource   *int             // nil = all resources
	Reason     string
	Status     BlockStatus
}

// Covers reports whether the block closes the given cell
func (b *RecurringBlock) Covers(date time.Time, t types.TimeString, resource int) bool {
	if b.Status != BlockActive || !resourceMatches(b.Resource, resource) || !t.InRange(b.StartTime, b.EndTime) {
		return false
	}

	switch b.Kind {
	case RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		return b.Weekday != nil && *b.Weekday == ISOWeekday(date)
	default:
		return false
	}
}

// Validate checks the weekday is present iff the block is weekly
func (b *RecurringBlock) Validate() error {
	switch b.Kind {
	case RecurrenceDaily:
		if b.Weekday != nil {
			return ErrInvalidRecurrence
		}
	case RecurrenceWeekly:
		if b.Weekday == nil || *b.Weekday < 1 || *b.Weekday > 7 {
			return ErrInvalidRecurrence
		}
	default:
		return ErrInvalidRecurrence
	}
	return nil
}

func resourceMatches(blockResource *int, resource int) bool {
	return blockResource == nil || *blockResource == resource
}
