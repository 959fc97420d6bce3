package get_week_snapshot

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/internal/service/blocks"
	"github.com/m04kA/SMC-ChairReservation/pkg/ptr"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

type slotIndexKey struct {
	date     string
	time     types.TimeString
	resource int
}

// buildGrid строит декартово произведение день x время x кресло
// Приоритет статусов: Closed > Booked > Active
func buildGrid(
	week domain.BookingWeek,
	times []types.TimeString,
	resourceCount int,
	blockSet *blocks.BlockSet,
	reservations []*domain.Reservation,
	viewer string,
) []Day {
	index := make(map[slotIndexKey]*domain.Reservation, len(reservations))
	for _, r := range reservations {
		index[slotIndexKey{date: r.Date.Format(domain.DateFormat), time: r.StartTime, resource: r.Resource}] = r
	}

	days := make([]Day, 0, 7)
	for _, date := range week.Days() {
		day := Day{Date: date, Slots: make([]Slot, 0, len(times))}
		for _, t := range times {
			slot := Slot{StartTime: t, Cells: make([]domain.SlotCell, 0, resourceCount)}
			for resource := 1; resource <= resourceCount; resource++ {
				slot.Cells = append(slot.Cells, buildCell(date, t, resource, blockSet, index, viewer))
			}
			day.Slots = append(day.Slots, slot)
		}
		days = append(days, day)
	}
	return days
}

func buildCell(
	date time.Time,
	t types.TimeString,
	resource int,
	blockSet *blocks.BlockSet,
	index map[slotIndexKey]*domain.Reservation,
	viewer string,
) domain.SlotCell {
	cell := domain.SlotCell{
		Date:      date,
		StartTime: t,
		Resource:  resource,
		Status:    domain.SlotActive,
	}

	if blockSet.IsBlocked(date, t, resource) {
		cell.Status = domain.SlotClosed
		return cell
	}

	res, ok := index[slotIndexKey{date: date.Format(domain.DateFormat), time: t, resource: resource}]
	if !ok {
		return cell
	}

	cell.Status = domain.SlotBooked
	// чужим пользователям видно только "занято"
	if res.IsOwnedBy(viewer) {
		cell.IsMine = true
		cell.DisplayLabel = res.DisplayLabel
		cell.ReservationID = ptr.Ptr(res.ID)
	}
	return cell
}
