// Package sync keeps a client-visible, date-indexed event collection
// consistent with the remote event repository across month navigation,
// editor commits, and asynchronously arriving AI suggestions.
package sync

import (
	"context"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

// Repository is the remote persistence boundary consumed by the cache,
// the editor, and the suggestion merger.
type Repository interface {
	// ListEvents returns all events with date in [from, to] inclusive,
	// ordered by date, then time, then insertion order.
	ListEvents(ctx context.Context, from, to string) ([]model.Event, error)

	// CreateEvent stores a new event and returns it with its assigned id.
	// idemKey, when non-empty, lets the repository collapse a retried
	// create into the original row instead of duplicating it.
	CreateEvent(ctx context.Context, date, timeStr, text, idemKey string) (*model.Event, error)

	// UpdateEvent replaces the time and text of the event with the given id.
	UpdateEvent(ctx context.Context, id int64, timeStr, text string) (*model.Event, error)

	// DeleteEvent removes the event with the given id.
	DeleteEvent(ctx context.Context, id int64) error
}

// Provider produces AI event suggestions for a date range. Implementations
// must treat the existing events as read-only context; suggestions that
// collide with them are filtered by the merger regardless.
type Provider interface {
	Suggest(ctx context.Context, prompt, from, to string, existing []model.Event) ([]model.Suggestion, error)
}

// ValidationError reports editor input rejected before any repository
// call was made. The editor session stays open so the user can fix it.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}
