package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/psqlbuilder"
)

const (
	table = "reservations"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	uniqueViolation = "23505"
)

var columns = []string{
	"id",
	"location_id",
	"resource",
	"reservation_date",
	"start_time",
	"identity",
	"display_label",
	"status",
	"created_at",
	"voided_at",
	"version",
}

// Repository репозиторий для работы с бронированиями
// Единственный источник правды о занятости слотов: уникальный частичный индекс
// ux_reservations_active_slot (location_id, reservation_date, start_time, resource) WHERE status = 'active'
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create вставляет активное бронирование
// Если слот уже занят активным бронированием, возвращает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"location_id",
			"resource",
			"reservation_date",
			"start_time",
			"identity",
			"display_label",
			"status",
		).
		Values(
			res.LocationID,
			res.Resource,
			res.Date.Format(domain.DateFormat),
			res.StartTime,
			res.Identity,
			res.DisplayLabel,
			domain.ReservationActive,
		).
		Suffix("RETURNING id, created_at, version").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&res.Version,
	)

	if isUniqueViolation(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.Status = domain.ReservationActive
	res.CreatedAt = createdAt.Time

	return res, nil
}

// GetByID получает бронирование по ID (в любом статусе)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Void переводит бронирование в статус voided
// Запись условная: обновляется только активное бронирование с ожидаемой версией.
// Если ни одна строка не изменилась, возвращает ErrStaleVersion
func (r *Repository) Void(ctx context.Context, id int64, expectedVersion int64, at time.Time) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.ReservationVoided).
		Set("voided_at", at).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{
			"id":      id,
			"status":  domain.ReservationActive,
			"version": expectedVersion,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Void - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Void - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Void - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStaleVersion
	}

	return nil
}

// GetByFilter получает бронирования с фильтрацией
// Сортировка: дата, время начала, номер кресла
func (r *Repository) GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.LocationID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location_id": *filter.LocationID})
	}
	if filter.Identity != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"identity": *filter.Identity})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": filter.From.Format(domain.DateFormat)})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": filter.To.Format(domain.DateFormat)})
	}
	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.ReservationActive})
	}

	query, args, err := selectBuilder.
		OrderBy("reservation_date ASC", "start_time ASC", "resource ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByFilter - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// LatestActiveDate возвращает дату самого позднего активного бронирования пользователя
// Если активных бронирований нет, возвращает nil
func (r *Repository) LatestActiveDate(ctx context.Context, identity string) (*time.Time, error) {
	query, args, err := psqlbuilder.Select("MAX(reservation_date)").
		From(table).
		Where(squirrel.Eq{
			"identity": identity,
			"status":   domain.ReservationActive,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LatestActiveDate - build select query: %v", ErrBuildQuery, err)
	}

	var latest sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&latest); err != nil {
		return nil, fmt.Errorf("%w: LatestActiveDate - scan: %v", ErrScanRow, err)
	}

	if !latest.Valid {
		return nil, nil
	}

	date := domain.DateOf(latest.Time)
	return &date, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res       domain.Reservation
		date      time.Time
		createdAt sql.NullTime
		voidedAt  sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.LocationID,
		&res.Resource,
		&date,
		&res.StartTime,
		&res.Identity,
		&res.DisplayLabel,
		&res.Status,
		&createdAt,
		&voidedAt,
		&res.Version,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.DateOf(date)
	res.CreatedAt = createdAt.Time
	if voidedAt.Valid {
		res.VoidedAt = &voidedAt.Time
	}

	return &res, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
