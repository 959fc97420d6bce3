package location

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var (
	// ErrLocationNotFound возвращается, когда площадка не найдена
	ErrLocationNotFound = fmt.Errorf("%w: location.repository: location not found", domain.ErrNotFound)

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("location.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("location.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("location.repository: failed to scan row")
)
