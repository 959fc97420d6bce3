package cancelpolicy

import (
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var (
	// ErrWindowClosed возвращается при отмене бронирования активной недели после закрытия окна
	ErrWindowClosed = fmt.Errorf("%w: cancelpolicy: booking window is closed", domain.ErrPolicyViolation)

	// ErrTooLate возвращается при отмене позже, чем за leadTime до начала
	ErrTooLate = fmt.Errorf("%w: cancelpolicy: too late to cancel", domain.ErrPolicyViolation)
)
