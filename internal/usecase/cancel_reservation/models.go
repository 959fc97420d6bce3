package cancel_reservation

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

// Request модель запроса на отмену бронирования
type Request struct {
	Identity      domain.Identity
	ReservationID int64
}

// Response модель ответа после отмены
type Response struct {
	ReservationID int64
	VoidedAt      time.Time
}
