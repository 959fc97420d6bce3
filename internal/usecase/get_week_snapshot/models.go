package get_week_snapshot

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// Request модель запроса недельной сетки
type Request struct {
	Identity   domain.Identity
	LocationID int64
}

// Response недельная сетка площадки глазами конкретного пользователя
type Response struct {
	LocationID     int64
	LocationName   string
	ResourceCount  int
	Week           domain.BookingWeek
	IsWindowOpen   bool
	CanBookNow     bool
	Days           []Day
	MyReservations []*domain.Reservation // активные бронирования пользователя на этой неделе
}

// Day слоты одного дня
type Day struct {
	Date  time.Time
	Slots []Slot
}

// Slot одно время начала, ячейка на каждое кресло
type Slot struct {
	StartTime types.TimeString
	Cells     []domain.SlotCell
}

// Cell возвращает ячейку по дате, времени и номеру кресла (для тестов и отладки)
func (r *Response) Cell(date time.Time, t types.TimeString, resource int) (domain.SlotCell, bool) {
	for _, day := range r.Days {
		if !domain.SameDate(day.Date, date) {
			continue
		}
		for _, slot := range day.Slots {
			if slot.StartTime != t {
				continue
			}
			for _, cell := range slot.Cells {
				if cell.Resource == resource {
					return cell, true
				}
			}
		}
	}
	return domain.SlotCell{}, false
}
