package book_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ChairReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ChairReservation/internal/api/middleware"
	"github.com/m04kA/SMC-ChairReservation/internal/domain"
	bookReservation "github.com/m04kA/SMC-ChairReservation/internal/usecase/book_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата (YYYY-MM-DD) или время (HH:MM)"
	msgInvalidResource    = "некорректный номер кресла"
	msgMissingIdentity    = "отсутствует пользователь"
	msgLocationNotFound   = "площадка не найдена"
	msgSlotTaken          = "слот только что заняли, выберите другой"
	msgForbidden          = "недостаточно прав для бронирования"
	msgRejected           = "бронирование невозможно"
)

type Handler struct {
	useCase BookReservationUseCase
	logger  Logger
}

func NewHandler(useCase BookReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req BookReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(req); err != nil {
		h.logger.Warn("POST /reservations - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(identity)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookReservation.ErrSlotTaken):
			h.logger.Warn("POST /reservations - Slot taken: identity=%s, location_id=%d", identity.ID, req.LocationID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, bookReservation.ErrLocationNotFound):
			h.logger.Warn("POST /reservations - Location not found: location_id=%d", req.LocationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, bookReservation.ErrInvalidResource):
			handlers.RespondBadRequest(w, msgInvalidResource)

		case errors.Is(err, domain.ErrValidation):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, domain.ErrAuthorization):
			h.logger.Warn("POST /reservations - Forbidden: identity=%s, error=%v", identity.ID, err)
			handlers.RespondForbidden(w, handlers.ReasonOr(err, msgForbidden))

		case errors.Is(err, domain.ErrPolicyViolation):
			h.logger.Warn("POST /reservations - Rejected: identity=%s, error=%v", identity.ID, err)
			handlers.RespondUnprocessable(w, handlers.ReasonOr(err, msgRejected))

		default:
			h.logger.Error("POST /reservations - Failed to book: identity=%s, location_id=%d, error=%v",
				identity.ID, req.LocationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, identity=%s, location_id=%d",
		result.ID, identity.ID, result.LocationID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
