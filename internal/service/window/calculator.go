package window

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// Settings параметры недельного окна
type Settings struct {
	Location       *time.Location
	OpeningWeekday int              // ISO: 1 (понедельник) .. 7 (воскресенье)
	EarlyOpen      types.TimeString // открытие для привилегированных
	GeneralOpen    types.TimeString // открытие для всех
	CloseDayOffset int              // дней от понедельника активной недели до дня закрытия
	CloseTime      types.TimeString
}

// DefaultSettings пятница 08:00 / 08:30, закрытие в четверг 17:00
func DefaultSettings(loc *time.Location) Settings {
	return Settings{
		Location:       loc,
		OpeningWeekday: 5,
		EarlyOpen:      types.MustTimeString("08:00"),
		GeneralOpen:    types.MustTimeString("08:30"),
		CloseDayOffset: 3,
		CloseTime:      types.MustTimeString("17:00"),
	}
}

// Calculator вычисляет активную неделю и окно бронирования по серверному времени
type Calculator struct {
	settings Settings
}

// NewCalculator создает калькулятор окна
func NewCalculator(settings Settings) (*Calculator, error) {
	if settings.Location == nil {
		return nil, fmt.Errorf("window: location is required")
	}
	for _, t := range []types.TimeString{settings.EarlyOpen, settings.GeneralOpen, settings.CloseTime} {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("window: invalid time %q: %w", t, err)
		}
	}
	if settings.OpeningWeekday < 1 || settings.OpeningWeekday > 7 {
		return nil, fmt.Errorf("window: opening weekday must be in [1, 7], got %d", settings.OpeningWeekday)
	}
	if settings.GeneralOpen.IsBefore(settings.EarlyOpen) {
		return nil, fmt.Errorf("window: general open %s is before early open %s", settings.GeneralOpen, settings.EarlyOpen)
	}
	return &Calculator{settings: settings}, nil
}

// Location возвращает таймзону оператора
func (c *Calculator) Location() *time.Location {
	return c.settings.Location
}

// CurrentWeek вычисляет активную неделю для момента now
//
// Якорь - последний день открытия (по умолчанию пятница) не позже now.
// Если now приходится на день открытия раньше раннего открытия, якорь сдвигается на неделю назад.
// Активная неделя начинается с ближайшего понедельника после якоря.
func (c *Calculator) CurrentWeek(now time.Time) domain.BookingWeek {
	local := now.In(c.settings.Location)
	today := domain.DateOf(local)

	daysSinceOpening := (domain.ISOWeekday(local) - c.settings.OpeningWeekday + 7) % 7
	anchor := today.AddDate(0, 0, -daysSinceOpening)
	if daysSinceOpening == 0 && types.NewTimeString(local).IsBefore(c.settings.EarlyOpen) {
		anchor = anchor.AddDate(0, 0, -7)
	}

	// для пятницы это +3, для понедельника +7
	monday := anchor.AddDate(0, 0, 8-domain.ISOWeekday(anchor))
	sunday := monday.AddDate(0, 0, 6)
	closeDay := monday.AddDate(0, 0, c.settings.CloseDayOffset)

	return domain.BookingWeek{
		Monday:      monday,
		Sunday:      sunday,
		Anchor:      anchor,
		WindowOpen:  c.settings.EarlyOpen.On(anchor, c.settings.Location),
		GeneralOpen: c.settings.GeneralOpen.On(anchor, c.settings.Location),
		WindowClose: c.settings.CloseTime.On(closeDay, c.settings.Location),
	}
}

// IsWindowOpen возвращает true, если open <= now < close
func (c *Calculator) IsWindowOpen(now time.Time) bool {
	return isOpen(c.CurrentWeek(now), now)
}

// CanBookNow проверяет, может ли пользователь бронировать в момент now
// В интервале [раннее открытие, общее открытие) в день якоря бронируют только привилегированные
func (c *Calculator) CanBookNow(now time.Time, privileged bool) bool {
	week := c.CurrentWeek(now)
	if !isOpen(week, now) {
		return false
	}
	if now.Before(week.GeneralOpen) {
		return privileged
	}
	return true
}

func isOpen(week domain.BookingWeek, now time.Time) bool {
	return !now.Before(week.WindowOpen) && now.Before(week.WindowClose)
}
