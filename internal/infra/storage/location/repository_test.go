package location

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/internal/testutil"
)

func TestRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, db)
	testutil.TruncateAll(t, ctx, db)
	repo := NewRepository(db)

	for _, loc := range []*domain.Location{
		{Name: "Nişantaşı", Status: domain.LocationActive, ResourceCount: 3, SlotMinutes: 30},
		{Name: "Beşiktaş", Status: domain.LocationInactive, ResourceCount: 1, SlotMinutes: 30},
		{Name: "Kadıköy", Status: domain.LocationActive, ResourceCount: 2, SlotMinutes: 30},
	} {
		testutil.InsertLocationRow(t, ctx, db, loc)
	}

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Kadıköy", active[0].Name)
	assert.Equal(t, "Nişantaşı", active[1].Name)

	got, err := repo.GetByID(ctx, active[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.ResourceCount)

	_, err = repo.GetByID(ctx, 999999)
	assert.ErrorIs(t, err, ErrLocationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
