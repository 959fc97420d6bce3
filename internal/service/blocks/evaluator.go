package blocks

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// Evaluator отвечает на вопрос "закрыта ли ячейка" по разовым и повторяющимся блокировкам
type Evaluator struct {
	repo   BlockRepository
	logger Logger
}

// NewEvaluator создает новый экземпляр сервиса блокировок
func NewEvaluator(repo BlockRepository, logger Logger) *Evaluator {
	return &Evaluator{
		repo:   repo,
		logger: logger,
	}
}

// IsBlocked проверяет, закрыта ли ячейка (дата, время, кресло) хотя бы одной активной блокировкой
func (e *Evaluator) IsBlocked(ctx context.Context, locationID int64, date time.Time, t types.TimeString, resource int) (bool, error) {
	set, err := e.LoadRange(ctx, locationID, date, date)
	if err != nil {
		return false, err
	}
	return set.IsBlocked(date, t, resource), nil
}

// LoadRange загружает блокировки площадки за период [from, to] одним проходом
// Используется при сборке недельной сетки, чтобы не ходить в БД на каждую ячейку
func (e *Evaluator) LoadRange(ctx context.Context, locationID int64, from, to time.Time) (*BlockSet, error) {
	adHoc, err := e.repo.ListAdHoc(ctx, locationID, domain.DateOf(from), domain.DateOf(to))
	if err != nil {
		e.logger.Error("LoadRange: failed to list ad-hoc blocks for location=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: LoadRange - list ad-hoc blocks: %v", ErrInternal, err)
	}

	recurring, err := e.repo.ListRecurring(ctx, locationID)
	if err != nil {
		e.logger.Error("LoadRange: failed to list recurring blocks for location=%d: %v", locationID, err)
		return nil, fmt.Errorf("%w: LoadRange - list recurring blocks: %v", ErrInternal, err)
	}

	return NewBlockSet(adHoc, recurring), nil
}

// BlockSet загруженные блокировки одной площадки
type BlockSet struct {
	adHoc     []*domain.AdHocBlock
	recurring []*domain.RecurringBlock
}

// NewBlockSet создает набор, отбрасывая неактивные блокировки
func NewBlockSet(adHoc []*domain.AdHocBlock, recurring []*domain.RecurringBlock) *BlockSet {
	set := &BlockSet{}
	for _, b := range adHoc {
		if b.Status == domain.BlockActive {
			set.adHoc = append(set.adHoc, b)
		}
	}
	for _, b := range recurring {
		if b.Status == domain.BlockActive {
			set.recurring = append(set.recurring, b)
		}
	}
	return set
}

// IsBlocked возвращает true, если ячейку закрывает хотя бы одна блокировка
func (s *BlockSet) IsBlocked(date time.Time, t types.TimeString, resource int) bool {
	for _, b := range s.adHoc {
		if b.Covers(date, t, resource) {
			return true
		}
	}
	for _, b := range s.recurring {
		if b.Covers(date, t, resource) {
			return true
		}
	}
	return false
}

// Len возвращает количество активных блокировок в наборе
func (s *BlockSet) Len() int {
	return len(s.adHoc) + len(s.recurring)
}
