package get_week_snapshot

import (
	"context"
	"errors"
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
	"github.com/m04kA/SMC-ChairReservation/internal/usecase/book_reservation"
	"github.com/m04kA/SMC-ChairReservation/pkg/logger"
	"github.com/m04kA/SMC-ChairReservation/pkg/ptr"
	tstypes "github.com/m04kA/SMC-ChairReservation/pkg/types"
)

var trt = time.FixedZone("TRT", 3*60*60)

var monday = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

type nopMetrics struct{}

func (nopMetrics) IncReservationOutcome(_, _ string) {}

type fixture struct {
	snapshot     *UseCase
	book         *book_reservation.UseCase
	reservations *memstore.Reservations
	blockStore   *memstore.Blocks
}

// площадка L: 2 кресла, активная неделя 2025-01-06..2025-01-12
func newFixture(t *testing.T) *fixture {
	t.Helper()

	calc, err := window.NewCalculator(window.DefaultSettings(trt))
	require.NoError(t, err)
	rules, err := slotrules.NewRuleSet([]slotrules.Range{
		{Start: "08:30", End: "12:00"},
		{Start: "13:30", End: "17:00"},
	}, 30)
	require.NoError(t, err)

	log := logger.Nop()
	clock := window.NewFixedClock(time.Date(2025, time.January, 3, 10, 0, 0, 0, trt))
	locations := memstore.NewLocations(
		&domain.Location{ID: 1, Name: "L", Status: domain.LocationActive, ResourceCount: 2, SlotMinutes: 30},
		&domain.Location{ID: 2, Name: "Closed", Status: domain.LocationInactive, ResourceCount: 1, SlotMinutes: 30},
	)

	f := &fixture{
		reservations: memstore.NewReservations(),
		blockStore:   &memstore.Blocks{},
	}
	evaluator := blocks.NewEvaluator(f.blockStore, log)

	f.snapshot = NewUseCase(f.reservations, locations, calc, rules, evaluator, clock, log)
	f.book = book_reservation.NewUseCase(
		f.reservations,
		locations,
		calc,
		rules,
		eligibility.NewGate(f.reservations, domain.DefaultMinGapDays, log),
		evaluator,
		&memstore.Publisher{},
		clock,
		nopMetrics{},
		log,
	)
	return f
}

func bookRequest(identity string, resource int, date time.Time, start string) *book_reservation.Request {
	return &book_reservation.Request{
		Identity:   domain.NewIdentity(identity, "Display "+identity),
		LocationID: 1,
		Resource:   resource,
		Date:       date,
		StartTime:  tstypes.MustTimeString(start),
	}
}

func snapshotRequest(identity string) *Request {
	return &Request{Identity: domain.NewIdentity(identity, ""), LocationID: 1}
}

func TestUseCase_Execute_GridShape(t *testing.T) {
	f := newFixture(t)

	resp, err := f.snapshot.Execute(context.Background(), snapshotRequest("alice"))
	require.NoError(t, err)

	assert.Equal(t, monday, resp.Week.Monday)
	assert.True(t, resp.IsWindowOpen)
	assert.True(t, resp.CanBookNow)
	require.Len(t, resp.Days, 7)
	for _, day := range resp.Days {
		require.Len(t, day.Slots, 14)
		for _, slot := range day.Slots {
			require.Len(t, slot.Cells, 2)
			for _, cell := range slot.Cells {
				assert.Equal(t, domain.SlotActive, cell.Status)
			}
		}
	}
	assert.Empty(t, resp.MyReservations)
}

func TestUseCase_Execute_EndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.book.Execute(ctx, bookRequest("A", 1, monday, "08:30"))
	require.NoError(t, err)

	_, err = f.book.Execute(ctx, bookRequest("B", 1, monday, "08:30"))
	assert.ErrorIs(t, err, domain.ErrConflict)

	forA, err := f.snapshot.Execute(ctx, snapshotRequest("A"))
	require.NoError(t, err)
	cell, ok := forA.Cell(monday, "08:30", 1)
	require.True(t, ok)
	assert.Equal(t, domain.SlotBooked, cell.Status)
	assert.True(t, cell.IsMine)
	assert.Equal(t, "Display A", cell.DisplayLabel)
	require.NotNil(t, cell.ReservationID)
	require.Len(t, forA.MyReservations, 1)
	assert.Equal(t, *cell.ReservationID, forA.MyReservations[0].ID)

	forB, err := f.snapshot.Execute(ctx, snapshotRequest("B"))
	require.NoError(t, err)
	cell, ok = forB.Cell(monday, "08:30", 1)
	require.True(t, ok)
	assert.Equal(t, domain.SlotBooked, cell.Status)
	assert.False(t, cell.IsMine)
	assert.Empty(t, cell.DisplayLabel)
	assert.Nil(t, cell.ReservationID)
	assert.Empty(t, forB.MyReservations)

	other, ok := forB.Cell(monday, "08:30", 2)
	require.True(t, ok)
	assert.Equal(t, domain.SlotActive, other.Status)
}

func TestUseCase_Execute_ClosedCells(t *testing.T) {
	f := newFixture(t)
	f.blockStore.AdHoc = []*domain.AdHocBlock{
		{ID: 1, LocationID: 1, Date: monday, StartTime: "08:30", EndTime: "09:30", Resource: ptr.Ptr(2), Status: domain.BlockActive},
	}
	f.blockStore.Recurring = []*domain.RecurringBlock{
		{ID: 2, LocationID: 1, Kind: domain.RecurrenceWeekly, Weekday: ptr.Ptr(3), StartTime: "13:30", EndTime: "17:00", Status: domain.BlockActive},
	}

	resp, err := f.snapshot.Execute(context.Background(), snapshotRequest("alice"))
	require.NoError(t, err)

	closed := func(date time.Time, start string, resource int) bool {
		cell, ok := resp.Cell(date, tstypes.MustTimeString(start), resource)
		require.True(t, ok)
		return cell.Status == domain.SlotClosed
	}

	wednesday := monday.AddDate(0, 0, 2)
	assert.True(t, closed(monday, "08:30", 2))
	assert.True(t, closed(monday, "09:00", 2))
	assert.False(t, closed(monday, "09:30", 2))
	assert.False(t, closed(monday, "08:30", 1), "resource-specific block leaves others open")
	assert.True(t, closed(wednesday, "13:30", 1))
	assert.True(t, closed(wednesday, "16:30", 2))
	assert.False(t, closed(wednesday.AddDate(0, 0, 1), "13:30", 1))
}

func TestUseCase_Execute_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.snapshot.Execute(context.Background(), &Request{LocationID: 99})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.snapshot.Execute(context.Background(), &Request{LocationID: 2})
	assert.ErrorIs(t, err, ErrLocationNotFound)

	_, err = f.snapshot.Execute(context.Background(), &Request{LocationID: 0})
	assert.ErrorIs(t, err, domain.ErrValidation)

	f.reservations.Err = errors.New("db down")
	_, err = f.snapshot.Execute(context.Background(), snapshotRequest("alice"))
	assert.ErrorIs(t, err, ErrInternal)
}
