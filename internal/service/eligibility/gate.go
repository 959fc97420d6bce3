package eligibility

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

const dateLayout = "02.01.2006"

// Gate проверяет, что между бронированиями пользователя проходит не меньше minGapDays дней
//
// Отсчет ведется от самого позднего активного бронирования, а не от последнего созданного:
// после отмены источником становится следующее по дате активное бронирование.
type Gate struct {
	repo       ReservationRepository
	minGapDays int
	logger     Logger
}

// NewGate создает новый экземпляр проверки
func NewGate(repo ReservationRepository, minGapDays int, logger Logger) *Gate {
	return &Gate{
		repo:       repo,
		minGapDays: minGapDays,
		logger:     logger,
	}
}

// Check возвращает nil, если пользователь может забронировать дату date
// Запрос на дату раньше уже существующего бронирования тоже отклоняется
func (g *Gate) Check(ctx context.Context, identity string, date time.Time) error {
	latest, err := g.repo.LatestActiveDate(ctx, identity)
	if err != nil {
		g.logger.Error("Check: failed to get latest active date for identity=%s: %v", identity, err)
		return fmt.Errorf("%w: Check - latest active date: %v", ErrInternal, err)
	}
	if latest == nil {
		return nil
	}

	gap := domain.DaysBetween(*latest, date)
	if gap >= g.minGapDays {
		return nil
	}

	next := domain.DateOf(*latest).AddDate(0, 0, g.minGapDays)
	g.logger.Warn("Check: identity=%s latest=%s requested=%s gap=%d < %d",
		identity, latest.Format(domain.DateFormat), date.Format(domain.DateFormat), gap, g.minGapDays)

	return domain.NewPolicyError(ErrTooSoon, fmt.Sprintf(
		"Последнее бронирование на %s. Следующее бронирование возможно не ранее %s",
		latest.Format(dateLayout), next.Format(dateLayout),
	))
}
