package get_week

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChairReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ChairReservation/internal/api/middleware"
	getWeekSnapshot "github.com/m04kA/SMC-ChairReservation/internal/usecase/get_week_snapshot"
)

const (
	msgInvalidLocationID = "некорректный ID площадки"
	msgMissingIdentity   = "отсутствует пользователь"
	msgLocationNotFound  = "площадка не найдена"
)

type Handler struct {
	useCase GetWeekSnapshotUseCase
	logger  Logger
}

func NewHandler(useCase GetWeekSnapshotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	locationID, err := strconv.ParseInt(mux.Vars(r)["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		h.logger.Warn("GET /locations/{id}/week - Invalid location ID: %v", mux.Vars(r)["locationId"])
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /locations/{id}/week - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getWeekSnapshot.Request{
		Identity:   identity,
		LocationID: locationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getWeekSnapshot.ErrLocationNotFound):
			h.logger.Warn("GET /locations/{id}/week - Location not found: location_id=%d", locationID)
			handlers.RespondNotFound(w, msgLocationNotFound)

		case errors.Is(err, getWeekSnapshot.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidLocationID)

		default:
			h.logger.Error("GET /locations/{id}/week - Failed to build snapshot: location_id=%d, error=%v", locationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /locations/{id}/week - Snapshot returned: location_id=%d, identity=%s", locationID, identity.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
