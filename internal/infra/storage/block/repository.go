package block

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ChairReservation/pkg/ptr"
)

// Repository репозиторий разовых и повторяющихся блокировок
// Возвращает только активные блокировки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListAdHoc получает активные разовые блокировки площадки за период [from, to]
func (r *Repository) ListAdHoc(ctx context.Context, locationID int64, from, to time.Time) ([]*domain.AdHocBlock, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"block_date",
		"start_time",
		"end_time",
		"resource",
		"reason",
		"status",
	).
		From("ad_hoc_blocks").
		Where(squirrel.Eq{
			"location_id": locationID,
			"status":      domain.BlockActive,
		}).
		Where(squirrel.GtOrEq{"block_date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"block_date": to.Format(domain.DateFormat)}).
		OrderBy("block_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAdHoc - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAdHoc - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.AdHocBlock, 0)
	for rows.Next() {
		var (
			b        domain.AdHocBlock
			date     time.Time
			resource sql.NullInt32
		)
		err := rows.Scan(
			&b.ID,
			&b.LocationID,
			&date,
			&b.StartTime,
			&b.EndTime,
			&resource,
			&b.Reason,
			&b.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAdHoc - scan row: %v", ErrScanRow, err)
		}
		b.Date = domain.DateOf(date)
		b.Resource = nullableInt(resource)
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAdHoc - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

// ListRecurring получает все активные повторяющиеся блокировки площадки
func (r *Repository) ListRecurring(ctx context.Context, locationID int64) ([]*domain.RecurringBlock, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"kind",
		"weekday",
		"start_time",
		"end_time",
		"resource",
		"reason",
		"status",
	).
		From("recurring_blocks").
		Where(squirrel.Eq{
			"location_id": locationID,
			"status":      domain.BlockActive,
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRecurring - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecurring - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.RecurringBlock, 0)
	for rows.Next() {
		var (
			b        domain.RecurringBlock
			weekday  sql.NullInt32
			resource sql.NullInt32
		)
		err := rows.Scan(
			&b.ID,
			&b.LocationID,
			&b.Kind,
			&weekday,
			&b.StartTime,
			&b.EndTime,
			&resource,
			&b.Reason,
			&b.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRecurring - scan row: %v", ErrScanRow, err)
		}
		b.Weekday = nullableInt(weekday)
		b.Resource = nullableInt(resource)
		blocks = append(blocks, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecurring - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}

func nullableInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	return ptr.Ptr(int(v.Int32))
}
