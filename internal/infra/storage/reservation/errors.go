package reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("%w: reservation.repository: reservation not found", domain.ErrNotFound)

	// ErrSlotTaken возвращается при нарушении уникальности активного слота
	ErrSlotTaken = fmt.Errorf("%w: reservation.repository: slot already taken", domain.ErrConflict)

	// ErrStaleVersion возвращается, когда бронирование уже изменено или отменено другим запросом
	ErrStaleVersion = fmt.Errorf("%w: reservation.repository: stale reservation version", domain.ErrConflict)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
