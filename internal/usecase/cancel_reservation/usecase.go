package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/reservation"
)

const operation = "cancel"

// UseCase use case для отмены бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	window          WindowCalculator
	policy          CancellationPolicy
	publisher       Publisher
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	window WindowCalculator,
	policy CancellationPolicy,
	publisher Publisher,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		window:          window,
		policy:          policy,
		publisher:       publisher,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	defer func() {
		uc.metrics.IncReservationOutcome(operation, domain.Outcome(err))
	}()

	uc.logger.Info("CancelReservation: identity=%s, reservation=%d", req.Identity.ID, req.ReservationID)

	if req.Identity.ID == "" || req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: identity and positive reservationID are required", ErrInvalidInput)
	}

	// 1. Бронирование существует и активно
	res, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}
	if !res.IsActive() {
		uc.logger.Warn("CancelReservation: reservation id=%d is already %s", res.ID, res.Status)
		return nil, domain.NewPolicyError(ErrAlreadyCancelled, "Бронирование уже отменено")
	}

	// 2. Отменить может только владелец
	if !res.IsOwnedBy(req.Identity.ID) {
		uc.logger.Warn("CancelReservation: identity=%s is not the owner of reservation id=%d", req.Identity.ID, res.ID)
		return nil, domain.NewPolicyError(ErrNotOwner, "Можно отменить только свое бронирование")
	}

	// 3. Политика отмены
	now := uc.timeProvider.Now()
	week := uc.window.CurrentWeek(now)
	if err := uc.policy.Check(now, res, week); err != nil {
		uc.logger.Warn("CancelReservation: policy denied for reservation id=%d: %v", res.ID, err)
		return nil, err
	}

	// 4. Условная отмена по версии
	if err := uc.reservationRepo.Void(ctx, res.ID, res.Version, now); err != nil {
		if errors.Is(err, reservationRepo.ErrStaleVersion) {
			uc.logger.Warn("CancelReservation: reservation id=%d changed concurrently", res.ID)
			return nil, ErrConcurrentUpdate
		}
		uc.logger.Error("CancelReservation: failed to void reservation id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: failed to void reservation: %v", ErrInternal, err)
	}

	uc.logger.Info("CancelReservation: successfully voided reservation id=%d", res.ID)

	// 5. Публикация: слот снова свободен, топик - неделя, в которую попадает бронирование
	event := domain.NewSlotChangedEvent(res.Slot(), domain.WeekOf(res.Date), domain.SlotActive)
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CancelReservation: failed to publish %s: %v", event.Topic(), err)
	}

	return &Response{
		ReservationID: res.ID,
		VoidedAt:      now,
	}, nil
}
