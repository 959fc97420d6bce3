package eligibility

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

var (
	// ErrTooSoon возвращается, если с последнего активного бронирования прошло меньше minGapDays
	ErrTooSoon = fmt.Errorf("%w: eligibility: too soon after previous reservation", domain.ErrPolicyViolation)

	// ErrInternal возвращается при ошибках чтения истории бронирований
	ErrInternal = errors.New("eligibility: internal error")
)
