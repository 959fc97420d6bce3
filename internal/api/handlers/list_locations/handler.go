package list_locations

import (
	"net/http"

	"github.com/m04kA/SMC-ChairReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ChairReservation/internal/api/middleware"
)

const msgMissingIdentity = "отсутствует пользователь"

type Handler struct {
	service LocationService
	logger  Logger
}

func NewHandler(service LocationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/locations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /locations - Missing identity")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	overview, err := h.service.Overview(r.Context(), identity)
	if err != nil {
		h.logger.Error("GET /locations - Failed to build overview: identity=%s, error=%v", identity.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /locations - Overview returned: identity=%s, locations=%d", identity.ID, len(overview.Locations))
	handlers.RespondJSON(w, http.StatusOK, overview)
}
