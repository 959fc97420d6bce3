package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// Площадки и блокировки заводятся вне сервиса, поэтому фикстуры пишут в таблицы напрямую

// InsertLocationRow создает площадку с произвольным статусом и возвращает ее ID
func InsertLocationRow(t *testing.T, ctx context.Context, db *sql.DB, loc *domain.Location) int64 {
	t.Helper()
	err := db.QueryRowContext(ctx,
		`INSERT INTO locations (name, status, resource_count, slot_minutes) VALUES ($1, $2, $3, $4) RETURNING id`,
		loc.Name, loc.Status, loc.ResourceCount, loc.SlotMinutes,
	).Scan(&loc.ID)
	if err != nil {
		t.Fatalf("failed to insert location: %v", err)
	}
	return loc.ID
}

// InsertAdHocBlock создает разовую блокировку и возвращает ее ID
func InsertAdHocBlock(t *testing.T, ctx context.Context, db *sql.DB, b *domain.AdHocBlock) int64 {
	t.Helper()
	err := db.QueryRowContext(ctx,
		`INSERT INTO ad_hoc_blocks (location_id, block_date, start_time, end_time, resource, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		b.LocationID, b.Date.Format(domain.DateFormat), b.StartTime, b.EndTime, b.Resource, b.Reason, b.Status,
	).Scan(&b.ID)
	if err != nil {
		t.Fatalf("failed to insert ad hoc block: %v", err)
	}
	return b.ID
}

// InsertRecurringBlock создает повторяющуюся блокировку и возвращает ее ID
func InsertRecurringBlock(t *testing.T, ctx context.Context, db *sql.DB, b *domain.RecurringBlock) int64 {
	t.Helper()
	if err := b.Validate(); err != nil {
		t.Fatalf("invalid recurring block fixture: %v", err)
	}
	err := db.QueryRowContext(ctx,
		`INSERT INTO recurring_blocks (location_id, kind, weekday, start_time, end_time, resource, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		b.LocationID, b.Kind, b.Weekday, b.StartTime, b.EndTime, b.Resource, b.Reason, b.Status,
	).Scan(&b.ID)
	if err != nil {
		t.Fatalf("failed to insert recurring block: %v", err)
	}
	return b.ID
}
