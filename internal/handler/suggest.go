package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/store"
)

// SuggestionProvider is the slice of the suggestion client this handler
// needs; it lets tests substitute a fake.
type SuggestionProvider interface {
	Suggest(ctx context.Context, prompt, from, to string, existing []model.Event) ([]model.Suggestion, error)
}

type SuggestHandler struct {
	eventStore *store.EventStore
	provider   SuggestionProvider
	logger     *slog.Logger
}

func NewSuggestHandler(es *store.EventStore, provider SuggestionProvider, logger *slog.Logger) *SuggestHandler {
	return &SuggestHandler{eventStore: es, provider: provider, logger: logger}
}

type suggestScheduleRequest struct {
	Prompt   string `json:"prompt"`
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

// SuggestSchedule serves POST /api/ai/suggest-schedule. It loads the
// existing events in the requested range, passes them to the provider
// as read-only context, and returns the raw suggestions. Nothing is
// written here; committing accepted suggestions is the client's merge
// step so conflicts are filtered against what the user actually sees.
func (h *SuggestHandler) SuggestSchedule(w http.ResponseWriter, r *http.Request) {
	if h.provider == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "suggestion provider is not configured"})
		return
	}

	var req suggestScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Prompt == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "prompt is required"})
		return
	}
	if !validDateKey(req.FromDate) || !validDateKey(req.ToDate) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from_date and to_date must be YYYY-MM-DD"})
		return
	}

	existing, err := h.eventStore.ListRange(req.FromDate, req.ToDate)
	if err != nil {
		h.logger.Error("list events for suggestion context", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load existing events"})
		return
	}

	suggestions, err := h.provider.Suggest(r.Context(), req.Prompt, req.FromDate, req.ToDate, existing)
	if err != nil {
		h.logger.Error("suggestion provider", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "failed to get suggestions"})
		return
	}
	if suggestions == nil {
		suggestions = []model.Suggestion{}
	}

	writeJSON(w, http.StatusOK, suggestions)
}
