package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChairReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ChairReservation/internal/api/middleware"
	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	cancelReservation "github.com/m04kA/SMC-ChairReservation/internal/usecase/cancel_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgMissingIdentity      = "отсутствует пользователь"
	msgNotFound             = "бронирование не найдено"
	msgConcurrentUpdate     = "бронирование изменилось, обновите страницу"
	msgRejected             = "отмена невозможна"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	ReservationID int64  `json:"reservationId"`
	VoidedAt      string `json:"voidedAt"`
}

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("POST /reservations/{id}/cancel - Invalid reservation ID: %v", mux.Vars(r)["reservationId"])
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations/{id}/cancel - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		Identity:      identity,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("POST /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelReservation.ErrConcurrentUpdate):
			h.logger.Warn("POST /reservations/{id}/cancel - Concurrent update: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidReservationID)

		case errors.Is(err, domain.ErrPolicyViolation):
			h.logger.Warn("POST /reservations/{id}/cancel - Rejected: reservation_id=%d, identity=%s, error=%v",
				reservationID, identity.ID, err)
			handlers.RespondUnprocessable(w, handlers.ReasonOr(err, msgRejected))

		default:
			h.logger.Error("POST /reservations/{id}/cancel - Failed to cancel: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations/{id}/cancel - Reservation cancelled: reservation_id=%d, identity=%s",
		reservationID, identity.ID)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{
		ReservationID: result.ReservationID,
		VoidedAt:      result.VoidedAt.Format(time.RFC3339),
	})
}
