// Package memstore содержит in-memory реализации репозиториев для тестов use case'ов.
// Уникальность активного слота соблюдается так же, как частичным индексом в PostgreSQL.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	locationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/location"
	reservationRepo "github.com/m04kA/SMC-ChairReservation/internal/infra/storage/reservation"
)

// Reservations in-memory реестр бронирований
type Reservations struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*domain.Reservation
	now    func() time.Time

	// Err, если задана, возвращается из всех методов
	Err error
}

// NewReservations создает пустой реестр
func NewReservations() *Reservations {
	return &Reservations{
		rows: make(map[int64]*domain.Reservation),
		now:  time.Now,
	}
}

func (s *Reservations) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	for _, existing := range s.rows {
		if existing.IsActive() && sameSlot(existing.Slot(), res.Slot()) {
			return nil, reservationRepo.ErrSlotTaken
		}
	}

	s.nextID++
	stored := *res
	stored.ID = s.nextID
	stored.Status = domain.ReservationActive
	stored.Version = 1
	stored.CreatedAt = s.now()
	s.rows[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (s *Reservations) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	res, ok := s.rows[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

func (s *Reservations) Void(_ context.Context, id int64, expectedVersion int64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}

	res, ok := s.rows[id]
	if !ok || res.Version != expectedVersion {
		return reservationRepo.ErrStaleVersion
	}
	if err := res.Void(at); err != nil {
		return reservationRepo.ErrStaleVersion
	}
	return nil
}

func (s *Reservations) GetByFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	out := make([]*domain.Reservation, 0)
	for _, res := range s.rows {
		if filter.LocationID != nil && res.LocationID != *filter.LocationID {
			continue
		}
		if filter.Identity != nil && res.Identity != *filter.Identity {
			continue
		}
		if filter.From != nil && res.Date.Before(domain.DateOf(*filter.From)) {
			continue
		}
		if filter.To != nil && res.Date.After(domain.DateOf(*filter.To)) {
			continue
		}
		if filter.ActiveOnly && !res.IsActive() {
			continue
		}
		cp := *res
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime.IsBefore(out[j].StartTime)
		}
		return out[i].Resource < out[j].Resource
	})

	return out, nil
}

func (s *Reservations) LatestActiveDate(_ context.Context, identity string) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	var latest *time.Time
	for _, res := range s.rows {
		if res.Identity != identity || !res.IsActive() {
			continue
		}
		if latest == nil || res.Date.After(*latest) {
			d := res.Date
			latest = &d
		}
	}
	return latest, nil
}

func sameSlot(a, b domain.SlotKey) bool {
	return a.LocationID == b.LocationID &&
		domain.SameDate(a.Date, b.Date) &&
		a.StartTime == b.StartTime &&
		a.Resource == b.Resource
}

// Count возвращает число бронирований в реестре (в любом статусе)
func (s *Reservations) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Locations in-memory справочник площадок
type Locations struct {
	mu   sync.Mutex
	rows map[int64]*domain.Location
}

// NewLocations создает справочник с указанными площадками
func NewLocations(locations ...*domain.Location) *Locations {
	s := &Locations{rows: make(map[int64]*domain.Location)}
	for _, l := range locations {
		s.rows[l.ID] = l
	}
	return s
}

func (s *Locations) GetByID(_ context.Context, id int64) (*domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.rows[id]
	if !ok {
		return nil, locationRepo.ErrLocationNotFound
	}
	out := *l
	return &out, nil
}

func (s *Locations) ListActive(_ context.Context) ([]*domain.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Location, 0, len(s.rows))
	for _, l := range s.rows {
		if l.IsActive() {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Blocks in-memory хранилище блокировок
type Blocks struct {
	AdHoc     []*domain.AdHocBlock
	Recurring []*domain.RecurringBlock
}

func (s *Blocks) ListAdHoc(_ context.Context, locationID int64, from, to time.Time) ([]*domain.AdHocBlock, error) {
	out := make([]*domain.AdHocBlock, 0)
	for _, b := range s.AdHoc {
		if b.LocationID == locationID && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Blocks) ListRecurring(_ context.Context, locationID int64) ([]*domain.RecurringBlock, error) {
	out := make([]*domain.RecurringBlock, 0)
	for _, b := range s.Recurring {
		if b.LocationID == locationID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Publisher запоминает опубликованные события
type Publisher struct {
	mu     sync.Mutex
	Events []domain.SlotChangedEvent
	Err    error
}

func (p *Publisher) Publish(_ context.Context, event domain.SlotChangedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, event)
	return nil
}

// Published возвращает копию опубликованных событий
func (p *Publisher) Published() []domain.SlotChangedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.SlotChangedEvent, len(p.Events))
	copy(out, p.Events)
	return out
}
