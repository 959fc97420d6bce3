package get_week_snapshot

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: get_week_snapshot: invalid input data", domain.ErrValidation)

	// ErrLocationNotFound возвращается, когда площадка не найдена или неактивна
	ErrLocationNotFound = fmt.Errorf("%w: get_week_snapshot: location not found", domain.ErrNotFound)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_week_snapshot: internal error")
)
