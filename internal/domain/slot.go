package domain

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// SlotStatus is the state of one grid cell as seen by a viewer
type SlotStatus string

const (
	SlotActive SlotStatus = "Active" // свободен
	SlotBooked SlotStatus = "Booked"
	SlotClosed SlotStatus = "Closed"
)

// SlotKey identifies the atomic unit of reservation
type SlotKey struct {
	LocationID int64
	Date       time.Time
	StartTime  types.TimeString
	Resource   int
}

// SlotCell is one (date, time, resource) cell of the weekly grid
type SlotCell struct {
	Date          time.Time
	StartTime     types.TimeString
	Resource      int
	Status        SlotStatus
	IsMine        bool
	DisplayLabel  string // только для владельца
	ReservationID *int64 // только для владельца
}

// SlotChangedEvent is published to the location+week topic after a commit
type SlotChangedEvent struct {
	LocationID int64      `json:"locationId"`
	Week       string     `json:"week"` // понедельник активной недели, YYYY-MM-DD
	Date       string     `json:"date"`
	StartTime  string     `json:"startTime"`
	Resource   int        `json:"resource"`
	Status     SlotStatus `json:"status"`
}

// NewSlotChangedEvent builds the event for a slot transition in the given week
func NewSlotChangedEvent(key SlotKey, week BookingWeek, status SlotStatus) SlotChangedEvent {
	return SlotChangedEvent{
		LocationID: key.LocationID,
		Week:       week.Monday.Format(DateFormat),
		Date:       key.Date.Format(DateFormat),
		StartTime:  key.StartTime.String(),
		Resource:   key.Resource,
		Status:     status,
	}
}

// Topic returns the fanout topic the event belongs to
func (e SlotChangedEvent) Topic() string {
	monday, err := time.Parse(DateFormat, e.Week)
	if err != nil {
		return ""
	}
	return WeekTopic(e.LocationID, monday)
}
