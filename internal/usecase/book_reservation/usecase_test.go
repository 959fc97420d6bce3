package book_reservation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/internal/service/blocks"
	"github.com/m04kA/SMC-ChairReservation/internal/service/eligibility"
	"github.com/m04kA/SMC-ChairReservation/internal/service/slotrules"
	"github.com/m04kA/SMC-ChairReservation/internal/service/window"
	"github.com/m04kA/SMC-ChairReservation/internal/testutil/memstore"
	"github.com/m04kA/SMC-ChairReservation/pkg/logger"
	"github.com/m04kA/SMC-ChairReservation/pkg/ptr"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

var trt = time.FixedZone("TRT", 3*60*60)

var monday = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

type outcomeCounter struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *outcomeCounter) IncReservationOutcome(_, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = make(map[string]int)
	}
	c.outcomes[outcome]++
}

type fixture struct {
	uc           *UseCase
	clock        *window.FixedClock
	reservations *memstore.Reservations
	blockStore   *memstore.Blocks
	publisher    *memstore.Publisher
	metrics      *outcomeCounter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	calc, err := window.NewCalculator(window.DefaultSettings(trt))
	require.NoError(t, err)

	rules, err := slotrules.NewRuleSet([]slotrules.Range{
		{Start: "08:30", End: "12:00"},
		{Start: "13:30", End: "17:00"},
	}, 30)
	require.NoError(t, err)

	f := &fixture{
		clock:        window.NewFixedClock(time.Date(2025, time.January, 3, 9, 0, 0, 0, trt)),
		reservations: memstore.NewReservations(),
		blockStore:   &memstore.Blocks{},
		publisher:    &memstore.Publisher{},
		metrics:      &outcomeCounter{},
	}
	locations := memstore.NewLocations(
		&domain.Location{ID: 1, Name: "Main", Status: domain.LocationActive, ResourceCount: 2, SlotMinutes: 30},
		&domain.Location{ID: 2, Name: "Closed", Status: domain.LocationInactive, ResourceCount: 2, SlotMinutes: 30},
	)

	log := logger.Nop()
	f.uc = NewUseCase(
		f.reservations,
		locations,
		calc,
		rules,
		eligibility.NewGate(f.reservations, domain.DefaultMinGapDays, log),
		blocks.NewEvaluator(f.blockStore, log),
		f.publisher,
		f.clock,
		f.metrics,
		log,
	)
	return f
}

func request(identity string, resource int, date time.Time, start types.TimeString) *Request {
	return &Request{
		Identity:   domain.NewIdentity(identity, "Name "+identity),
		LocationID: 1,
		Resource:   resource,
		Date:       date,
		StartTime:  start,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request("alice", 1, monday, "08:30"))
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, monday, resp.WeekMonday)

	stored, err := f.reservations.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Name alice", stored.DisplayLabel)
	assert.Equal(t, domain.ReservationActive, stored.Status)

	events := f.publisher.Published()
	require.Len(t, events, 1)
	assert.Equal(t, "location:1:week:2025-01-06", events[0].Topic())
	assert.Equal(t, domain.SlotBooked, events[0].Status)
	assert.Equal(t, "08:30", events[0].StartTime)
	assert.Equal(t, 1, f.metrics.outcomes[domain.OutcomeSuccess])
}

func TestUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(f *fixture)
		req     *Request
		wantErr error
	}{
		{
			name:    "missing identity",
			req:     request("", 1, monday, "08:30"),
			wantErr: domain.ErrValidation,
		},
		{
			name:    "window closed",
			prepare: func(f *fixture) { f.clock.Set(time.Date(2025, time.January, 9, 17, 0, 0, 0, trt)) },
			req:     request("alice", 1, monday, "08:30"),
			wantErr: ErrWindowClosed,
		},
		{
			name:    "early sub-window without capability",
			prepare: func(f *fixture) { f.clock.Set(time.Date(2025, time.January, 3, 8, 10, 0, 0, trt)) },
			req:     request("alice", 1, monday, "08:30"),
			wantErr: domain.ErrAuthorization,
		},
		{
			name:    "outside active week",
			req:     request("alice", 1, monday.AddDate(0, 0, 7), "08:30"),
			wantErr: ErrOutsideActiveWeek,
		},
		{
			name: "unknown location",
			req: func() *Request {
				r := request("alice", 1, monday, "08:30")
				r.LocationID = 99
				return r
			}(),
			wantErr: domain.ErrNotFound,
		},
		{
			name: "inactive location",
			req: func() *Request {
				r := request("alice", 1, monday, "08:30")
				r.LocationID = 2
				return r
			}(),
			wantErr: ErrLocationInactive,
		},
		{
			name:    "resource out of range",
			req:     request("alice", 3, monday, "08:30"),
			wantErr: ErrInvalidResource,
		},
		{
			name:    "lunch break is not a slot",
			req:     request("alice", 1, monday, "12:30"),
			wantErr: ErrInvalidSlot,
		},
		{
			name: "blocked slot",
			prepare: func(f *fixture) {
				f.blockStore.Recurring = append(f.blockStore.Recurring, &domain.RecurringBlock{
					ID: 1, LocationID: 1, Kind: domain.RecurrenceWeekly, Weekday: ptr.Ptr(1),
					StartTime: "08:00", EndTime: "10:00", Status: domain.BlockActive,
				})
			},
			req:     request("alice", 1, monday, "09:00"),
			wantErr: ErrSlotBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(f)
			}

			_, err := f.uc.Execute(context.Background(), tt.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.reservations.Count())
			assert.Empty(t, f.publisher.Published())
		})
	}
}

func TestUseCase_Execute_EarlyAccess(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(time.Date(2025, time.January, 3, 8, 10, 0, 0, trt))

	req := request("alice", 1, monday, "08:30")
	req.Identity = domain.NewIdentity("alice", "", string(domain.CapabilityEarlyAccess))

	_, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestUseCase_Execute_Eligibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("alice", 1, monday, "08:30"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("alice", 2, monday.AddDate(0, 0, 1), "08:30"))
	require.Error(t, err)
	assert.ErrorIs(t, err, eligibility.ErrTooSoon)
	assert.Contains(t, domain.ReasonOf(err), "06.01.2025")
}

func TestUseCase_Execute_ConflictIsDistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, request("alice", 1, monday, "08:30"))
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, request("bob", 1, monday, "08:30"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, domain.OutcomeConflict, domain.Outcome(err))
}

func TestUseCase_Execute_ParallelBookingsOfOneSlot(t *testing.T) {
	for _, n := range []int{2, 8, 32} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			f := newFixture(t)

			var (
				wg        sync.WaitGroup
				mu        sync.Mutex
				succeeded int
				conflicts int
				others    []error
			)
			start := make(chan struct{})
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					<-start
					_, err := f.uc.Execute(context.Background(), request(fmt.Sprintf("user-%d", i), 1, monday, "10:00"))

					mu.Lock()
					defer mu.Unlock()
					switch {
					case err == nil:
						succeeded++
					case errors.Is(err, domain.ErrConflict):
						conflicts++
					default:
						others = append(others, err)
					}
				}(i)
			}
			close(start)
			wg.Wait()

			assert.Empty(t, others)
			assert.Equal(t, 1, succeeded)
			assert.Equal(t, n-1, conflicts)
			assert.Len(t, f.publisher.Published(), 1)
		})
	}
}

func TestUseCase_Execute_PublishFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture(t)
	f.publisher.Err = errors.New("redis is down")

	resp, err := f.uc.Execute(context.Background(), request("alice", 1, monday, "08:30"))

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestUseCase_Execute_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.reservations.Err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request("alice", 1, monday, "08:30"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.OutcomeError, domain.Outcome(err))
}
