package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/database"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/store"
)

type fakeProvider struct {
	suggestions []model.Suggestion
	err         error
	gotExisting []model.Event
}

func (p *fakeProvider) Suggest(_ context.Context, _, _, _ string, existing []model.Event) ([]model.Suggestion, error) {
	p.gotExisting = existing
	if p.err != nil {
		return nil, p.err
	}
	return p.suggestions, nil
}

func setupSuggestHandler(t *testing.T, p SuggestionProvider) (*store.EventStore, *http.ServeMux) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	es := store.NewEventStore(db)
	h := NewSuggestHandler(es, p, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/ai/suggest-schedule", h.SuggestSchedule)
	return es, mux
}

func TestSuggestSchedulePassesExistingContext(t *testing.T) {
	provider := &fakeProvider{
		suggestions: []model.Suggestion{{Date: "2025-12-20", Time: "18:00", Text: "Stretch"}},
	}
	es, mux := setupSuggestHandler(t, provider)
	es.Create("2025-12-20", "09:00", "Run", "")
	es.Create("2026-02-01", "09:00", "Outside range", "")

	rec := doJSON(t, mux, http.MethodPost, "/api/ai/suggest-schedule", map[string]string{
		"prompt": "plan my workouts", "from_date": "2025-12-01", "to_date": "2025-12-31",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if len(provider.gotExisting) != 1 || provider.gotExisting[0].Text != "Run" {
		t.Errorf("existing context = %v", provider.gotExisting)
	}

	var got []model.Suggestion
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 1 || got[0].Text != "Stretch" {
		t.Errorf("suggestions = %v", got)
	}
}

func TestSuggestScheduleValidation(t *testing.T) {
	_, mux := setupSuggestHandler(t, &fakeProvider{})

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing prompt", map[string]string{"from_date": "2025-12-01", "to_date": "2025-12-31"}},
		{"bad from", map[string]string{"prompt": "p", "from_date": "dec 1", "to_date": "2025-12-31"}},
		{"bad to", map[string]string{"prompt": "p", "from_date": "2025-12-01", "to_date": ""}},
	}
	for _, tt := range tests {
		rec := doJSON(t, mux, http.MethodPost, "/api/ai/suggest-schedule", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tt.name, rec.Code)
		}
	}
}

func TestSuggestScheduleProviderFailure(t *testing.T) {
	es, mux := setupSuggestHandler(t, &fakeProvider{err: errors.New("unreachable")})

	rec := doJSON(t, mux, http.MethodPost, "/api/ai/suggest-schedule", map[string]string{
		"prompt": "p", "from_date": "2025-12-01", "to_date": "2025-12-31",
	})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}

	// Provider failure must not have written anything.
	events, _ := es.ListRange("2025-12-01", "2025-12-31")
	if len(events) != 0 {
		t.Errorf("events written: %v", events)
	}
}

func TestSuggestScheduleUnconfigured(t *testing.T) {
	_, mux := setupSuggestHandler(t, nil)

	rec := doJSON(t, mux, http.MethodPost, "/api/ai/suggest-schedule", map[string]string{
		"prompt": "p", "from_date": "2025-12-01", "to_date": "2025-12-31",
	})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
