package book_reservation

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: book_reservation: invalid input data", domain.ErrValidation)

	// ErrWindowClosed возвращается вне окна бронирования
	ErrWindowClosed = fmt.Errorf("%w: book_reservation: booking window is closed", domain.ErrPolicyViolation)

	// ErrEarlyAccessOnly возвращается при попытке непривилегированного пользователя бронировать в раннем окне
	ErrEarlyAccessOnly = fmt.Errorf("%w: book_reservation: only early access identities may book now", domain.ErrAuthorization)

	// ErrOutsideActiveWeek возвращается, если дата не принадлежит активной неделе
	ErrOutsideActiveWeek = fmt.Errorf("%w: book_reservation: date is outside the active week", domain.ErrPolicyViolation)

	// ErrLocationNotFound возвращается, когда площадка не найдена
	ErrLocationNotFound = fmt.Errorf("%w: book_reservation: location not found", domain.ErrNotFound)

	// ErrLocationInactive возвращается, когда площадка не принимает бронирования
	ErrLocationInactive = fmt.Errorf("%w: book_reservation: location is inactive", domain.ErrPolicyViolation)

	// ErrInvalidResource возвращается, когда номер кресла вне диапазона площадки
	ErrInvalidResource = fmt.Errorf("%w: book_reservation: resource is out of range", domain.ErrValidation)

	// ErrInvalidSlot возвращается, когда время не попадает на сетку слотов
	ErrInvalidSlot = fmt.Errorf("%w: book_reservation: invalid slot time", domain.ErrPolicyViolation)

	// ErrSlotBlocked возвращается, когда слот закрыт блокировкой
	ErrSlotBlocked = fmt.Errorf("%w: book_reservation: slot is blocked", domain.ErrPolicyViolation)

	// ErrSlotTaken возвращается, когда слот только что заняли
	ErrSlotTaken = fmt.Errorf("%w: book_reservation: slot just taken", domain.ErrConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_reservation: internal error")
)
