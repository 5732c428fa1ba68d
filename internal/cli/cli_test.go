package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSplitClock(t *testing.T) {
	tests := []struct {
		in      string
		hours   string
		minutes string
	}{
		{"09:30", "09", "30"},
		{"9:5", "9", "5"},
		{"9", "9", ""},
		{"18:00", "18", "00"},
	}
	for _, tt := range tests {
		h, m := splitClock(tt.in)
		if h != tt.hours || m != tt.minutes {
			t.Errorf("splitClock(%q) = %q, %q, want %q, %q", tt.in, h, m, tt.hours, tt.minutes)
		}
	}
}

func TestAddCommandCreatesEvent(t *testing.T) {
	var got struct {
		Date string `json:"date"`
		Time string `json:"time"`
		Text string `json:"text"`
	}
	var idemKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/events" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		idemKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "date": got.Date, "time": got.Time, "text": got.Text,
		})
	}))
	defer srv.Close()

	cmd := New()
	cmd.SetArgs([]string{"add", "--server", srv.URL, "2025-12-20", "9:00", "Morning", "run"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if got.Date != "2025-12-20" {
		t.Errorf("date = %q", got.Date)
	}
	if got.Time != "09:00" {
		t.Errorf("time = %q, want zero-padded", got.Time)
	}
	if got.Text != "Morning run" {
		t.Errorf("text = %q", got.Text)
	}
	if idemKey == "" {
		t.Error("missing Idempotency-Key header")
	}
}

func TestAddCommandRejectsBlankText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called for invalid input")
	}))
	defer srv.Close()

	cmd := New()
	cmd.SetArgs([]string{"add", "--server", srv.URL, "2025-12-20", "9:00", "   "})
	if err := cmd.Execute(); err == nil {
		t.Error("expected validation error")
	}
}

func TestEventsCommandRequiresRange(t *testing.T) {
	cmd := New()
	cmd.SetArgs([]string{"events"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without date or range")
	}
}
