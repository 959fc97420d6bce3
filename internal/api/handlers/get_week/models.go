package get_week

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	getWeekSnapshot "github.com/m04kA/SMC-ChairReservation/internal/usecase/get_week_snapshot"
)

// WeekResponse HTTP response model
type WeekResponse struct {
	LocationID     int64                 `json:"locationId"`
	LocationName   string                `json:"locationName"`
	ResourceCount  int                   `json:"resourceCount"`
	Monday         string                `json:"monday"`
	Sunday         string                `json:"sunday"`
	WindowClose    string                `json:"windowClose"`
	IsWindowOpen   bool                  `json:"isWindowOpen"`
	CanBookNow     bool                  `json:"canBookNow"`
	Topic          string                `json:"topic"`
	Days           []DayResponse         `json:"days"`
	MyReservations []ReservationResponse `json:"myReservations"`
}

type DayResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	StartTime string         `json:"startTime"`
	Cells     []CellResponse `json:"cells"`
}

type CellResponse struct {
	Resource      int    `json:"resource"`
	Status        string `json:"status"`
	IsMine        bool   `json:"isMine,omitempty"`
	DisplayLabel  string `json:"displayLabel,omitempty"`
	ReservationID *int64 `json:"reservationId,omitempty"`
}

type ReservationResponse struct {
	ID        int64  `json:"id"`
	Resource  int    `json:"resource"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeekSnapshot.Response) *WeekResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		day := DayResponse{Date: d.Date.Format(domain.DateFormat), Slots: make([]SlotResponse, 0, len(d.Slots))}
		for _, s := range d.Slots {
			slot := SlotResponse{StartTime: s.StartTime.String(), Cells: make([]CellResponse, 0, len(s.Cells))}
			for _, c := range s.Cells {
				slot.Cells = append(slot.Cells, CellResponse{
					Resource:      c.Resource,
					Status:        string(c.Status),
					IsMine:        c.IsMine,
					DisplayLabel:  c.DisplayLabel,
					ReservationID: c.ReservationID,
				})
			}
			day.Slots = append(day.Slots, slot)
		}
		days = append(days, day)
	}

	mine := make([]ReservationResponse, 0, len(resp.MyReservations))
	for _, r := range resp.MyReservations {
		mine = append(mine, ReservationResponse{
			ID:        r.ID,
			Resource:  r.Resource,
			Date:      r.Date.Format(domain.DateFormat),
			StartTime: r.StartTime.String(),
		})
	}

	return &WeekResponse{
		LocationID:     resp.LocationID,
		LocationName:   resp.LocationName,
		ResourceCount:  resp.ResourceCount,
		Monday:         resp.Week.Monday.Format(domain.DateFormat),
		Sunday:         resp.Week.Sunday.Format(domain.DateFormat),
		WindowClose:    resp.Week.WindowClose.Format(time.RFC3339),
		IsWindowOpen:   resp.IsWindowOpen,
		CanBookNow:     resp.CanBookNow,
		Topic:          domain.WeekTopic(resp.LocationID, resp.Week.Monday),
		Days:           days,
		MyReservations: mine,
	}
}
