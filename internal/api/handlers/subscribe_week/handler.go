package subscribe_week

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ChairReservation/internal/api/handlers"
	"github.com/m04kA/SMC-ChairReservation/internal/domain"
)

const (
	msgInvalidLocationID = "некорректный ID площадки"
	msgInvalidMonday     = "неделя задается датой понедельника YYYY-MM-DD"
	msgUnavailable       = "подписка временно недоступна"

	eventSlotChanged = "slot_changed"
	defaultHeartbeat = 25 * time.Second
)

type Handler struct {
	hub       Subscriber
	heartbeat time.Duration
	logger    Logger
}

func NewHandler(hub Subscriber, heartbeat time.Duration, logger Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &Handler{
		hub:       hub,
		heartbeat: heartbeat,
		logger:    logger,
	}
}

// Handle GET /api/v1/locations/{locationId}/weeks/{monday}/events
// Server-Sent Events: клиент подписан, пока открыто соединение
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	locationID, err := strconv.ParseInt(vars["locationId"], 10, 64)
	if err != nil || locationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidLocationID)
		return
	}

	monday, err := time.Parse(domain.DateFormat, vars["monday"])
	if err != nil || domain.ISOWeekday(monday) != 1 {
		handlers.RespondBadRequest(w, msgInvalidMonday)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("GET /events - ResponseWriter does not support flushing")
		handlers.RespondInternalError(w)
		return
	}

	topic := domain.WeekTopic(locationID, monday)
	sub, err := h.hub.Subscribe(topic)
	if err != nil {
		h.logger.Warn("GET /events - Failed to subscribe: topic=%s, error=%v", topic, err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}
	defer h.hub.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.logger.Info("GET /events - Subscribed: topic=%s, subscription=%s", topic, sub.ID)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /events - Client left: topic=%s, subscription=%s", topic, sub.ID)
			return

		case event, open := <-sub.Events():
			if !open {
				return
			}
			if err := writeEvent(w, event); err != nil {
				h.logger.Warn("GET /events - Write failed: subscription=%s, error=%v", sub.ID, err)
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, event domain.SlotChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventSlotChanged, payload)
	return err
}
