package cancelpolicy

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// Policy решает, можно ли отменить бронирование в момент now
//
//   - бронирование на дату активной недели: до закрытия окна (строго)
//   - любое другое: не позже чем за leadTime до начала (включительно)
type Policy struct {
	leadTime time.Duration
	loc      *time.Location
}

// NewPolicy создает политику отмены
func NewPolicy(leadTime time.Duration, loc *time.Location) *Policy {
	return &Policy{leadTime: leadTime, loc: loc}
}

// LeadTime возвращает минимальный запас до начала слота
func (p *Policy) LeadTime() time.Duration {
	return p.leadTime
}

// CanCancel возвращает true, если отмена разрешена
func (p *Policy) CanCancel(now time.Time, r *domain.Reservation, week domain.BookingWeek) bool {
	return p.Check(now, r, week) == nil
}

// ReasonIfDenied возвращает причину отказа или пустую строку, если отмена разрешена
func (p *Policy) ReasonIfDenied(now time.Time, r *domain.Reservation, week domain.BookingWeek) string {
	var policyErr *domain.PolicyError
	if errors.As(p.Check(now, r, week), &policyErr) {
		return policyErr.Reason
	}
	return ""
}

// Check возвращает nil или *domain.PolicyError с причиной отказа
func (p *Policy) Check(now time.Time, r *domain.Reservation, week domain.BookingWeek) error {
	if week.Contains(r.Date) {
		if now.Before(week.WindowClose) {
			return nil
		}
		return domain.NewPolicyError(ErrWindowClosed, fmt.Sprintf(
			"Окно бронирования закрыто %s, отмена бронирований этой недели недоступна",
			week.WindowClose.In(p.loc).Format(domain.DateTimeFormat),
		))
	}

	deadline := r.StartsAt(p.loc).Add(-p.leadTime)
	if !now.After(deadline) {
		return nil
	}
	return domain.NewPolicyError(ErrTooLate, fmt.Sprintf(
		"Отмена возможна не позднее чем за %d мин. до начала (до %s)",
		int(p.leadTime.Minutes()), deadline.Format(domain.DateTimeFormat),
	))
}
