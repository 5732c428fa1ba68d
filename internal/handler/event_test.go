package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/database"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupEventHandler(t *testing.T) (*EventHandler, *store.EventStore, *http.ServeMux) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	es := store.NewEventStore(db)
	h := NewEventHandler(es, nil, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/events", h.List)
	mux.HandleFunc("POST /api/events", h.Create)
	mux.HandleFunc("PUT /api/events/{id}", h.Update)
	mux.HandleFunc("DELETE /api/events/{id}", h.Delete)
	return h, es, mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestCreateEvent(t *testing.T) {
	_, _, mux := setupEventHandler(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/events", map[string]string{
		"date": "2025-12-15", "time": "14:30", "text": "Gym",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var event model.Event
	if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.ID == 0 || event.Text != "Gym" {
		t.Errorf("event = %+v", event)
	}
}

func TestCreateEventValidation(t *testing.T) {
	_, _, mux := setupEventHandler(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"blank text", map[string]string{"date": "2025-12-15", "time": "10:00", "text": "   "}},
		{"bad time", map[string]string{"date": "2025-12-15", "time": "25:00", "text": "x"}},
		{"bad date", map[string]string{"date": "12/15/2025", "time": "10:00", "text": "x"}},
	}
	for _, tt := range tests {
		rec := doJSON(t, mux, http.MethodPost, "/api/events", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}

	// Nothing should have been stored.
	rec := doJSON(t, mux, http.MethodGet, "/api/events?from=2025-12-01&to=2025-12-31", nil)
	var events []model.Event
	json.Unmarshal(rec.Body.Bytes(), &events)
	if len(events) != 0 {
		t.Errorf("events stored despite validation errors: %v", events)
	}
}

func TestCreateEventIdempotencyKey(t *testing.T) {
	_, _, mux := setupEventHandler(t)

	body, _ := json.Marshal(map[string]string{"date": "2025-12-15", "time": "10:00", "text": "Once"})
	var ids []int64
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body))
		req.Header.Set("Idempotency-Key", "key-1")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}
		var event model.Event
		json.Unmarshal(rec.Body.Bytes(), &event)
		ids = append(ids, event.ID)
	}
	if ids[0] != ids[1] {
		t.Errorf("retried create produced new row: %v", ids)
	}
}

func TestListEventsByRangeAndMonth(t *testing.T) {
	_, es, mux := setupEventHandler(t)
	es.Create("2025-12-15", "10:00", "December", "")
	es.Create("2026-01-05", "10:00", "January", "")

	rec := doJSON(t, mux, http.MethodGet, "/api/events?from=2025-12-01&to=2025-12-31", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var events []model.Event
	json.Unmarshal(rec.Body.Bytes(), &events)
	if len(events) != 1 || events[0].Text != "December" {
		t.Errorf("range result = %v", events)
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/events?year=2026&month=1", nil)
	events = nil
	json.Unmarshal(rec.Body.Bytes(), &events)
	if len(events) != 1 || events[0].Text != "January" {
		t.Errorf("month result = %v", events)
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/events", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing params status = %d, want 400", rec.Code)
	}
}

func TestListEventsEmptyIsJSONArray(t *testing.T) {
	_, _, mux := setupEventHandler(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/events?from=2025-12-01&to=2025-12-31", nil)
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty JSON array", got)
	}
}

func TestUpdateEvent(t *testing.T) {
	_, es, mux := setupEventHandler(t)
	event, _ := es.Create("2025-12-15", "10:00", "Meeting", "")

	rec := doJSON(t, mux, http.MethodPut, "/api/events/1", map[string]string{
		"time": "11:30", "text": "Meeting moved",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	got, _ := es.GetByID(event.ID)
	if got.Time != "11:30" || got.Text != "Meeting moved" {
		t.Errorf("stored = %+v", got)
	}
}

func TestUpdateEventNotFound(t *testing.T) {
	_, _, mux := setupEventHandler(t)

	rec := doJSON(t, mux, http.MethodPut, "/api/events/999", map[string]string{
		"time": "11:30", "text": "x",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteEvent(t *testing.T) {
	_, es, mux := setupEventHandler(t)
	event, _ := es.Create("2025-12-15", "10:00", "Meeting", "")

	rec := doJSON(t, mux, http.MethodDelete, "/api/events/1", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	got, _ := es.GetByID(event.ID)
	if got != nil {
		t.Error("event still present after delete")
	}

	rec = doJSON(t, mux, http.MethodDelete, "/api/events/1", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
