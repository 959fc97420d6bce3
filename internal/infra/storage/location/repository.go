package location

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/psqlbuilder"
)

// Repository репозиторий для работы с площадками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID (в любом статусе)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	query, args, err := psqlbuilder.Select("id", "name", "status", "resource_count", "slot_minutes").
		From("locations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var loc domain.Location
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&loc.ID,
		&loc.Name,
		&loc.Status,
		&loc.ResourceCount,
		&loc.SlotMinutes,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLocationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan location: %v", ErrScanRow, err)
	}

	return &loc, nil
}

// ListActive получает все активные площадки, отсортированные по названию
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Location, error) {
	query, args, err := psqlbuilder.Select("id", "name", "status", "resource_count", "slot_minutes").
		From("locations").
		Where(squirrel.Eq{"status": domain.LocationActive}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.Status, &loc.ResourceCount, &loc.SlotMinutes); err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, &loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}
