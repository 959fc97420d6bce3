package get_week_snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	locationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/location"
)

// UseCase use case для получения недельной сетки площадки
type UseCase struct {
	reservationRepo ReservationRepository
	locationRepo    LocationRepository
	window          WindowCalculator
	slotRules       SlotRules
	blocks          BlockLoader
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	locationRepo LocationRepository,
	window WindowCalculator,
	slotRules SlotRules,
	blocks BlockLoader,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		locationRepo:    locationRepo,
		window:          window,
		slotRules:       slotRules,
		blocks:          blocks,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute выполняет use case получения недельной сетки
// Чтение не синхронизировано с записью: подписчики получают изменения через fanout и перечитывают сетку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekSnapshot: identity=%s, location=%d", req.Identity.ID, req.LocationID)

	// 1. Валидация входных данных
	if req.LocationID <= 0 {
		return nil, fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	// 2. Активная неделя
	now := uc.timeProvider.Now()
	week := uc.window.CurrentWeek(now)

	// 3. Площадка
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("GetWeekSnapshot: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("GetWeekSnapshot: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}
	if !location.IsActive() {
		uc.logger.Warn("GetWeekSnapshot: location id=%d is inactive", location.ID)
		return nil, ErrLocationNotFound
	}

	// 4. Блокировки недели одним запросом
	blockSet, err := uc.blocks.LoadRange(ctx, location.ID, week.Monday, week.Sunday)
	if err != nil {
		uc.logger.Error("GetWeekSnapshot: failed to load blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to load blocks: %v", ErrInternal, err)
	}

	// 5. Активные бронирования недели
	reservations, err := uc.reservationRepo.GetByFilter(ctx, domain.ReservationFilter{
		LocationID: &location.ID,
		From:       &week.Monday,
		To:         &week.Sunday,
		ActiveOnly: true,
	})
	if err != nil {
		uc.logger.Error("GetWeekSnapshot: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Сетка
	days := buildGrid(week, uc.slotRules.EnumerateDailySlots(), location.ResourceCount, blockSet, reservations, req.Identity.ID)

	mine := make([]*domain.Reservation, 0)
	for _, r := range reservations {
		if r.IsOwnedBy(req.Identity.ID) {
			mine = append(mine, r)
		}
	}

	uc.logger.Info("GetWeekSnapshot: location=%d week=%s reservations=%d blocks=%d mine=%d",
		location.ID, week.Monday.Format(domain.DateFormat), len(reservations), blockSet.Len(), len(mine))

	return &Response{
		LocationID:     location.ID,
		LocationName:   location.Name,
		ResourceCount:  location.ResourceCount,
		Week:           week,
		IsWindowOpen:   uc.window.IsWindowOpen(now),
		CanBookNow:     uc.window.CanBookNow(now, req.Identity.IsPrivileged()),
		Days:           days,
		MyReservations: mine,
	}, nil
}
