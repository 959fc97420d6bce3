package blocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/logger"
	"github.com/m04kA/SMC-ChairReservation/pkg/ptr"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

type fakeBlockRepo struct {
	adHoc     []*domain.AdHocBlock
	recurring []*domain.RecurringBlock
	err       error
}

func (f *fakeBlockRepo) ListAdHoc(_ context.Context, locationID int64, from, to time.Time) ([]*domain.AdHocBlock, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.AdHocBlock
	for _, b := range f.adHoc {
		if b.LocationID == locationID && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBlockRepo) ListRecurring(_ context.Context, locationID int64) ([]*domain.RecurringBlock, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.RecurringBlock
	for _, b := range f.recurring {
		if b.LocationID == locationID {
			out = append(out, b)
		}
	}
	return out, nil
}

// 2025-01-06 понедельник
var monday = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func TestEvaluator_IsBlocked(t *testing.T) {
	repo := &fakeBlockRepo{
		adHoc: []*domain.AdHocBlock{
			{ID: 1, LocationID: 1, Date: monday, StartTime: "10:00", EndTime: "11:00", Resource: ptr.Ptr(2), Status: domain.BlockActive},
			{ID: 2, LocationID: 1, Date: monday, StartTime: "15:00", EndTime: "16:00", Status: domain.BlockDisabled},
		},
		recurring: []*domain.RecurringBlock{
			{ID: 3, LocationID: 1, Kind: domain.RecurrenceWeekly, Weekday: ptr.Ptr(3), StartTime: "08:30", EndTime: "12:00", Status: domain.BlockActive},
			{ID: 4, LocationID: 1, Kind: domain.RecurrenceDaily, StartTime: "16:30", EndTime: "17:00", Resource: ptr.Ptr(1), Status: domain.BlockActive},
		},
	}
	evaluator := NewEvaluator(repo, logger.Nop())
	ctx := context.Background()
	wednesday := monday.AddDate(0, 0, 2)
	thursday := monday.AddDate(0, 0, 3)

	tests := []struct {
		name     string
		date     time.Time
		time     types.TimeString
		resource int
		want     bool
	}{
		{name: "ad-hoc covers its resource", date: monday, time: "10:30", resource: 2, want: true},
		{name: "ad-hoc other resource is open", date: monday, time: "10:30", resource: 1, want: false},
		{name: "ad-hoc end is exclusive", date: monday, time: "11:00", resource: 2, want: false},
		{name: "disabled block is ignored", date: monday, time: "15:00", resource: 1, want: false},
		{name: "weekly block on its weekday", date: wednesday, time: "09:00", resource: 3, want: true},
		{name: "weekly block on other weekday", date: thursday, time: "09:00", resource: 3, want: false},
		{name: "daily block every day", date: thursday, time: "16:30", resource: 1, want: true},
		{name: "daily block other resource", date: thursday, time: "16:30", resource: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := evaluator.IsBlocked(ctx, 1, tt.date, tt.time, tt.resource)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluator_LoadRange(t *testing.T) {
	repo := &fakeBlockRepo{
		adHoc: []*domain.AdHocBlock{
			{ID: 1, LocationID: 1, Date: monday, StartTime: "10:00", EndTime: "11:00", Status: domain.BlockActive},
			{ID: 2, LocationID: 1, Date: monday.AddDate(0, 0, 14), StartTime: "10:00", EndTime: "11:00", Status: domain.BlockActive},
			{ID: 3, LocationID: 2, Date: monday, StartTime: "10:00", EndTime: "11:00", Status: domain.BlockActive},
		},
	}
	evaluator := NewEvaluator(repo, logger.Nop())

	set, err := evaluator.LoadRange(context.Background(), 1, monday, monday.AddDate(0, 0, 6))
	require.NoError(t, err)

	assert.Equal(t, 1, set.Len())
	assert.True(t, set.IsBlocked(monday, "10:00", 4))
}

func TestEvaluator_RepositoryError(t *testing.T) {
	evaluator := NewEvaluator(&fakeBlockRepo{err: errors.New("connection refused")}, logger.Nop())

	_, err := evaluator.IsBlocked(context.Background(), 1, monday, "10:00", 1)

	assert.ErrorIs(t, err, ErrInternal)
}
