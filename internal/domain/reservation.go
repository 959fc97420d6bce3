package domain

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationActive ReservationStatus = "active"
	ReservationVoided ReservationStatus = "voided"
)

// Reservation represents a booked (location, date, time, resource) slot
type Reservation struct {
	ID           int64
	LocationID   int64
	Resource     int // номер кресла, 1..Location.ResourceCount
	Date         time.Time
	StartTime    types.TimeString
	Identity     string
	DisplayLabel string
	Status       ReservationStatus
	CreatedAt    time.Time
	VoidedAt     *time.Time
	Version      int64 // concurrency token, увеличивается при каждой записи
}

// IsActive returns true if the reservation still holds its slot
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// IsOwnedBy returns true if the reservation belongs to the identity
func (r *Reservation) IsOwnedBy(identity string) bool {
	return r.Identity == identity
}

// Void moves the reservation into the terminal voided state.
// A voided reservation can never be reactivated.
func (r *Reservation) Void(at time.Time) error {
	if r.Status != ReservationActive {
		return ErrReservationNotActive
	}
	r.Status = ReservationVoided
	r.VoidedAt = &at
	r.Version++
	return nil
}

// StartsAt returns the reservation start instant in the operator timezone
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.StartTime.On(r.Date, loc)
}

// Slot returns the slot key the reservation occupies
func (r *Reservation) Slot() SlotKey {
	return SlotKey{
		LocationID: r.LocationID,
		Date:       r.Date,
		StartTime:  r.StartTime,
		Resource:   r.Resource,
	}
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	LocationID *int64     // опционально
	Identity   *string    // опционально
	From       *time.Time // включительно
	To         *time.Time // включительно
	ActiveOnly bool
}
