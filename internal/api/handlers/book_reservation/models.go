package book_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	bookReservation "github.com/m04kA/SMC-ChairReservation/internal/usecase/book_reservation"
	"github.com/m04kA/SMC-ChairReservation/pkg/types"
)

// BookReservationRequest HTTP request model
type BookReservationRequest struct {
	LocationID int64  `json:"locationId" validate:"required,gt=0"`
	Resource   int    `json:"resource" validate:"required,gt=0"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"` // "2025-01-06"
	StartTime  string `json:"startTime" validate:"required"`                // "08:30"
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID         int64  `json:"id"`
	LocationID int64  `json:"locationId"`
	Resource   int    `json:"resource"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	Week       string `json:"week"`
	CreatedAt  string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookReservationRequest) ToUseCaseRequest(identity domain.Identity) (*bookReservation.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}

	return &bookReservation.Request{
		Identity:   identity,
		LocationID: r.LocationID,
		Resource:   r.Resource,
		Date:       date,
		StartTime:  startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:         resp.ID,
		LocationID: resp.LocationID,
		Resource:   resp.Resource,
		Date:       resp.Date.Format(domain.DateFormat),
		StartTime:  resp.StartTime.String(),
		Week:       resp.WeekMonday.Format(domain.DateFormat),
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
