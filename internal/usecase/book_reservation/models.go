package book_reservation

import (
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// Request модель запроса на бронирование
type Request struct {
	Identity   domain.Identity  // утверждение о пользователе из заголовков
	LocationID int64            // ID площадки
	Resource   int              // номер кресла
	Date       time.Time        // дата (без времени)
	StartTime  types.TimeString // время начала слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         int64
	LocationID int64
	Resource   int
	Date       time.Time
	StartTime  types.TimeString
	WeekMonday time.Time
	CreatedAt  time.Time
}
