package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

// Outcome records the fate of one accepted suggestion during commit.
// Event is set on success; Err is set when the repository rejected it.
type Outcome struct {
	Suggestion model.Suggestion
	Event      *model.Event
	Err        error
}

// MergeResult is the summary of one suggestion-merge run.
type MergeResult struct {
	// Committed holds the events the repository confirmed, in suggestion
	// order.
	Committed []model.Event
	// Conflicts counts suggestions dropped because their (date, time)
	// slot was already occupied. Conflicts are a normal filter outcome,
	// not errors.
	Conflicts int
	// Outcomes holds one entry per suggestion that survived the conflict
	// filter, including per-item repository failures.
	Outcomes []Outcome
}

// Merger asks the suggestion provider for proposed events, drops the
// ones that collide with what the user already has, and commits the rest
// through the same create path the editor uses.
type Merger struct {
	cache    *Cache
	repo     Repository
	provider Provider
	logger   *slog.Logger
}

func NewMerger(repo Repository, provider Provider, cache *Cache, logger *slog.Logger) *Merger {
	return &Merger{cache: cache, repo: repo, provider: provider, logger: logger}
}

// Merge runs one suggestion pass over the inclusive date range [from, to].
//
// A provider failure aborts the whole operation before any commit; the
// cache and repository are untouched. Repository failures during commit
// are per-item: one rejected suggestion does not block the rest.
//
// The conflict rule is an exact (date, time) string match against events
// already in the cache. Near-miss times are deliberately not treated as
// conflicts.
func (m *Merger) Merge(ctx context.Context, prompt, from, to string) (*MergeResult, error) {
	existing := m.cache.EventsInRange(from, to)

	suggestions, err := m.provider.Suggest(ctx, prompt, from, to, existing)
	if err != nil {
		return nil, fmt.Errorf("suggest [%s, %s]: %w", from, to, err)
	}

	occupied := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		occupied[e.Date+" "+e.Time] = struct{}{}
	}

	result := &MergeResult{}
	for _, s := range suggestions {
		slot := s.Date + " " + s.Time
		if _, taken := occupied[slot]; taken {
			result.Conflicts++
			m.logger.Debug("suggestion conflicts with existing event", "date", s.Date, "time", s.Time)
			continue
		}

		outcome := Outcome{Suggestion: s}
		event, err := m.commit(ctx, s)
		if err != nil {
			outcome.Err = err
			m.logger.Warn("suggestion commit failed", "date", s.Date, "time", s.Time, "error", err)
		} else {
			outcome.Event = event
			result.Committed = append(result.Committed, *event)
			// A committed suggestion now occupies its slot; a duplicate
			// later in the same batch counts as a conflict.
			occupied[slot] = struct{}{}
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

func (m *Merger) commit(ctx context.Context, s model.Suggestion) (*model.Event, error) {
	text, err := model.ValidateText(s.Text)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	if !model.ValidTime(s.Time) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid time %q", s.Time)}
	}
	if _, _, _, err := model.ParseDateKey(s.Date); err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid date %q", s.Date)}
	}

	event, err := m.repo.CreateEvent(ctx, s.Date, s.Time, text, uuid.NewString())
	if err != nil {
		return nil, err
	}
	m.cache.Upsert(*event)
	return event, nil
}
