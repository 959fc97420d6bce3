package locations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/internal/service/locations/models"
)

// Service сервис обзора площадок
type Service struct {
	locationRepo LocationRepository
	window       WindowCalculator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(
	locationRepo LocationRepository,
	window WindowCalculator,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		locationRepo: locationRepo,
		window:       window,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Overview возвращает активные площадки (по имени) вместе с активной неделей.
// CanBookNow учитывает ранний доступ вызывающего.
func (s *Service) Overview(ctx context.Context, identity domain.Identity) (*models.OverviewResponse, error) {
	s.logger.Info("Overview: identity=%s", identity.ID)

	now := s.timeProvider.Now()
	week := s.window.CurrentWeek(now)

	list, err := s.locationRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("Overview: repository error: %v", err)
		return nil, fmt.Errorf("%w: Overview - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Overview: %d active locations, week=%s", len(list), week.Monday.Format(domain.DateFormat))
	return &models.OverviewResponse{
		Week:         models.FromDomainWeek(week),
		IsWindowOpen: s.window.IsWindowOpen(now),
		CanBookNow:   s.window.CanBookNow(now, identity.IsPrivileged()),
		Locations:    models.FromDomainLocations(list),
	}, nil
}
