package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/store"
	ws "github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/websocket"
)

type EventHandler struct {
	eventStore *store.EventStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewEventHandler(es *store.EventStore, hub *ws.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{eventStore: es, hub: hub, logger: logger}
}

type eventRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Text string `json:"text"`
}

// List serves GET /api/events. It accepts either an inclusive from/to
// date range or a year/month pair; year/month matches the month's date
// prefix the way the original UI fetches its visible window.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var events []model.Event
	var err error

	switch {
	case q.Get("from") != "" && q.Get("to") != "":
		from, to := q.Get("from"), q.Get("to")
		if !validDateKey(from) || !validDateKey(to) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from and to must be YYYY-MM-DD"})
			return
		}
		events, err = h.eventStore.ListRange(from, to)
	case q.Get("year") != "" && q.Get("month") != "":
		year, yerr := strconv.Atoi(q.Get("year"))
		month, merr := strconv.Atoi(q.Get("month"))
		if yerr != nil || merr != nil || month < 1 || month > 12 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "year and month must be numbers, month 1-12"})
			return
		}
		events, err = h.eventStore.ListMonth(year, time.Month(month))
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from/to or year/month query parameters are required"})
		return
	}

	if err != nil {
		h.logger.Error("list events", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list events"})
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// Create serves POST /api/events. An Idempotency-Key header, when
// present, makes a retried create return the originally stored row.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAndValidate(w, r, true)
	if !ok {
		return
	}

	event, err := h.eventStore.Create(req.Date, req.Time, req.Text, r.Header.Get("Idempotency-Key"))
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create event"})
		return
	}

	h.broadcast("created", event.ID)
	writeJSON(w, http.StatusCreated, event)
}

// Update serves PUT /api/events/{id}. Only time and text are mutable;
// the event stays attached to its date.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.eventStore.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	req, ok := h.parseAndValidate(w, r, false)
	if !ok {
		return
	}

	event, err := h.eventStore.Update(id, req.Time, req.Text)
	if err != nil {
		h.logger.Error("update event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update event"})
		return
	}

	h.broadcast("updated", event.ID)
	writeJSON(w, http.StatusOK, event)
}

// Delete serves DELETE /api/events/{id}.
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.eventStore.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get event"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "event not found"})
		return
	}

	if err := h.eventStore.Delete(id); err != nil {
		h.logger.Error("delete event", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete event"})
		return
	}

	h.broadcast("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// parseAndValidate decodes and validates an event body. needDate is
// false for updates, where the date field is ignored.
func (h *EventHandler) parseAndValidate(w http.ResponseWriter, r *http.Request, needDate bool) (*eventRequest, bool) {
	var req eventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return nil, false
	}

	text, err := model.ValidateText(req.Text)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return nil, false
	}
	req.Text = text

	if !model.ValidTime(req.Time) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "time must be HH:MM 24-hour format"})
		return nil, false
	}

	if needDate && !validDateKey(req.Date) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return nil, false
	}

	return &req, true
}

func (h *EventHandler) broadcast(action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(ws.NewMessage("event", action, id))
	}
}

func validDateKey(s string) bool {
	_, _, _, err := model.ParseDateKey(s)
	return err == nil
}
