package cancel_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: cancel_reservation: invalid input data", domain.ErrValidation)

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = fmt.Errorf("%w: cancel_reservation: reservation not found", domain.ErrNotFound)

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = fmt.Errorf("%w: cancel_reservation: reservation already cancelled", domain.ErrPolicyViolation)

	// ErrNotOwner возвращается при попытке отменить чужое бронирование
	ErrNotOwner = fmt.Errorf("%w: cancel_reservation: reservation belongs to another identity", domain.ErrPolicyViolation)

	// ErrConcurrentUpdate возвращается, если бронирование изменилось между чтением и записью
	ErrConcurrentUpdate = fmt.Errorf("%w: cancel_reservation: reservation was modified concurrently", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
