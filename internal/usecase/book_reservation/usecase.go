package book_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	locationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/location"
	reservationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/reservation"
)

const operation = "book"

// UseCase use case для бронирования кресла
type UseCase struct {
	reservationRepo ReservationRepository
	locationRepo    LocationRepository
	window          WindowCalculator
	slotRules       SlotRules
	eligibility     EligibilityGate
	blocks          BlockEvaluator
	publisher       Publisher
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	locationRepo LocationRepository,
	window WindowCalculator,
	slotRules SlotRules,
	eligibility EligibilityGate,
	blocks BlockEvaluator,
	publisher Publisher,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		locationRepo:    locationRepo,
		window:          window,
		slotRules:       slotRules,
		eligibility:     eligibility,
		blocks:          blocks,
		publisher:       publisher,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case бронирования
//
// Проверки 1-6 не атомарны со вставкой: единственный механизм строгой согласованности -
// уникальный индекс активных слотов. Из N параллельных запросов на один слот ровно один
// проходит вставку, остальные получают ErrSlotTaken
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.IncReservationOutcome(operation, domain.Outcome(err))
	}()

	uc.logger.Info("BookReservation: identity=%s, location=%d, resource=%d, date=%s, time=%s",
		req.Identity.ID, req.LocationID, req.Resource, req.Date.Format(domain.DateFormat), req.StartTime)

	// 0. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookReservation: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOf(req.Date)
	now := uc.timeProvider.Now()
	week := uc.window.CurrentWeek(now)

	// 1. Окно бронирования и ранний доступ
	if !uc.window.CanBookNow(now, req.Identity.IsPrivileged()) {
		if !now.Before(week.WindowOpen) && now.Before(week.GeneralOpen) {
			uc.logger.Warn("BookReservation: identity=%s has no early access at %s", req.Identity.ID, now.Format(domain.DateTimeFormat))
			return nil, domain.NewPolicyError(ErrEarlyAccessOnly, fmt.Sprintf(
				"Бронирование откроется для всех в %s", week.GeneralOpen.Format(domain.DateTimeFormat),
			))
		}
		uc.logger.Warn("BookReservation: window closed at %s", now.Format(domain.DateTimeFormat))
		return nil, domain.NewPolicyError(ErrWindowClosed, "Окно бронирования сейчас закрыто")
	}

	// 2. Дата должна принадлежать активной неделе
	if !week.Contains(date) {
		uc.logger.Warn("BookReservation: date=%s outside active week %s..%s",
			date.Format(domain.DateFormat), week.Monday.Format(domain.DateFormat), week.Sunday.Format(domain.DateFormat))
		return nil, domain.NewPolicyError(ErrOutsideActiveWeek, fmt.Sprintf(
			"Бронирование доступно только на неделю %s - %s",
			week.Monday.Format(domain.DateFormat), week.Sunday.Format(domain.DateFormat),
		))
	}

	// 3. Площадка активна, номер кресла в диапазоне
	location, err := uc.locationRepo.GetByID(ctx, req.LocationID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrLocationNotFound) {
			uc.logger.Warn("BookReservation: location id=%d not found", req.LocationID)
			return nil, ErrLocationNotFound
		}
		uc.logger.Error("BookReservation: failed to get location id=%d: %v", req.LocationID, err)
		return nil, fmt.Errorf("%w: failed to get location: %v", ErrInternal, err)
	}
	if !location.IsActive() {
		uc.logger.Warn("BookReservation: location id=%d is inactive", location.ID)
		return nil, domain.NewPolicyError(ErrLocationInactive, "Площадка не принимает бронирования")
	}
	if !location.HasResource(req.Resource) {
		uc.logger.Warn("BookReservation: resource=%d out of range [1, %d]", req.Resource, location.ResourceCount)
		return nil, fmt.Errorf("%w: resource must be in [1, %d]", ErrInvalidResource, location.ResourceCount)
	}

	// 4. Время попадает на сетку слотов
	if !uc.slotRules.IsValid(req.StartTime) {
		uc.logger.Warn("BookReservation: time=%s is not a valid slot", req.StartTime)
		return nil, domain.NewPolicyError(ErrInvalidSlot, fmt.Sprintf("Время %s не входит в расписание", req.StartTime))
	}

	// 5. Интервал с предыдущим активным бронированием
	if err := uc.eligibility.Check(ctx, req.Identity.ID, date); err != nil {
		if errors.Is(err, domain.ErrPolicyViolation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: eligibility check: %v", ErrInternal, err)
	}

	// 6. Блокировки
	blocked, err := uc.blocks.IsBlocked(ctx, location.ID, date, req.StartTime, req.Resource)
	if err != nil {
		uc.logger.Error("BookReservation: failed to evaluate blocks: %v", err)
		return nil, fmt.Errorf("%w: evaluate blocks: %v", ErrInternal, err)
	}
	if blocked {
		uc.logger.Warn("BookReservation: slot %s %s resource=%d is blocked", date.Format(domain.DateFormat), req.StartTime, req.Resource)
		return nil, domain.NewPolicyError(ErrSlotBlocked, "Слот закрыт для бронирования")
	}

	// 7. Вставка; нарушение уникальности = слот только что заняли
	created, err := uc.reservationRepo.Create(ctx, &domain.Reservation{
		LocationID:   location.ID,
		Resource:     req.Resource,
		Date:         date,
		StartTime:    req.StartTime,
		Identity:     req.Identity.ID,
		DisplayLabel: req.Identity.Label(),
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			uc.logger.Warn("BookReservation: slot %s %s resource=%d just taken", date.Format(domain.DateFormat), req.StartTime, req.Resource)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("BookReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("BookReservation: successfully created reservation id=%d", created.ID)

	// 8. Публикация изменения слота
	event := domain.NewSlotChangedEvent(created.Slot(), week, domain.SlotBooked)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("BookReservation: failed to publish %s: %v", event.Topic(), err)
	}

	return &Response{
		ID:         created.ID,
		LocationID: created.LocationID,
		Resource:   created.Resource,
		Date:       created.Date,
		StartTime:  created.StartTime,
		WeekMonday: week.Monday,
		CreatedAt:  created.CreatedAt,
	}, nil
}
