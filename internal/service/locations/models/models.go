package models

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// LocationItem площадка в обзоре
type LocationItem struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ResourceCount int    `json:"resourceCount"`
	SlotMinutes   int    `json:"slotMinutes"`
}

// WeekInfo границы активной недели и моменты окна бронирования
type WeekInfo struct {
	Monday      string    `json:"monday"`
	Sunday      string    `json:"sunday"`
	WindowOpen  time.Time `json:"windowOpen"`
	GeneralOpen time.Time `json:"generalOpen"`
	WindowClose time.Time `json:"windowClose"`
}

// OverviewResponse обзор активных площадок на текущую неделю
type OverviewResponse struct {
	Week         WeekInfo       `json:"week"`
	IsWindowOpen bool           `json:"isWindowOpen"`
	CanBookNow   bool           `json:"canBookNow"`
	Locations    []LocationItem `json:"locations"`
}

// FromDomainWeek конвертирует неделю в модель ответа
func FromDomainWeek(week domain.BookingWeek) WeekInfo {
	return WeekInfo{
		Monday:      week.Monday.Format(domain.DateFormat),
		Sunday:      week.Sunday.Format(domain.DateFormat),
		WindowOpen:  week.WindowOpen,
		GeneralOpen: week.GeneralOpen,
		WindowClose: week.WindowClose,
	}
}

// FromDomainLocations конвертирует список площадок
func FromDomainLocations(locations []*domain.Location) []LocationItem {
	items := make([]LocationItem, 0, len(locations))
	for _, l := range locations {
		items = append(items, LocationItem{
			ID:            l.ID,
			Name:          l.Name,
			ResourceCount: l.ResourceCount,
			SlotMinutes:   l.SlotMinutes,
		})
	}
	return items
}
