package sync

import (
	"context"
	"fmt"
	"log/slog"
	stdsync "sync"

	"github.com/google/uuid"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

// Mode distinguishes a create session from an edit of an existing event.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Session is the transient state of one open event form. It lives only
// while the form is open and is discarded on close or successful commit.
type Session struct {
	Mode    Mode
	DateKey string
	// TargetIndex and targetID identify the event under edit within its
	// day's sequence. They are unset in create mode.
	TargetIndex int
	targetID    int64
	// idemKey is generated when the session opens so a retried commit of
	// the same session collapses into one repository row.
	idemKey string

	Hours   string
	Minutes string
	Text    string
}

// Editor runs one create/edit session at a time against the cache and
// the repository. No local mutation is applied until the repository
// confirms: a failed round trip leaves both the session and the cache
// exactly as they were.
type Editor struct {
	mu      stdsync.Mutex
	cache   *Cache
	repo    Repository
	session *Session
	logger  *slog.Logger
}

func NewEditor(repo Repository, cache *Cache, logger *slog.Logger) *Editor {
	return &Editor{cache: cache, repo: repo, logger: logger}
}

// OpenForCreate starts an empty session scoped to the given date,
// replacing any session already open.
func (e *Editor) OpenForCreate(dateKey string) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session = &Session{
		Mode:    ModeCreate,
		DateKey: dateKey,
		idemKey: uuid.NewString(),
	}
	return e.session
}

// OpenForEdit starts a session pre-filled from the event at index within
// the date's cached sequence.
func (e *Editor) OpenForEdit(dateKey string, index int) (*Session, error) {
	day := e.cache.EventsOn(dateKey)
	if index < 0 || index >= len(day) {
		return nil, fmt.Errorf("no event at index %d on %s", index, dateKey)
	}
	target := day[index]

	e.mu.Lock()
	defer e.mu.Unlock()

	e.session = &Session{
		Mode:        ModeEdit,
		DateKey:     dateKey,
		TargetIndex: index,
		targetID:    target.ID,
		Hours:       target.Time[:2],
		Minutes:     target.Time[3:],
		Text:        target.Text,
	}
	return e.session, nil
}

// Session returns the open session, or nil.
func (e *Editor) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Commit validates the open session and pushes it to the repository. On
// validation failure it returns a *ValidationError and the session stays
// open with no repository call made. On repository failure the session
// also stays open and the cache is left untouched. On success the
// confirmed event is upserted into the cache and the session is closed.
func (e *Editor) Commit(ctx context.Context) (*model.Event, error) {
	e.mu.Lock()
	s := e.session
	e.mu.Unlock()

	if s == nil {
		return nil, fmt.Errorf("no open editor session")
	}

	text, err := model.ValidateText(s.Text)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}
	timeStr, err := model.NormalizeTime(s.Hours, s.Minutes)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	var event *model.Event
	switch s.Mode {
	case ModeCreate:
		event, err = e.repo.CreateEvent(ctx, s.DateKey, timeStr, text, s.idemKey)
		if err != nil {
			return nil, fmt.Errorf("create event: %w", err)
		}
	case ModeEdit:
		event, err = e.repo.UpdateEvent(ctx, s.targetID, timeStr, text)
		if err != nil {
			return nil, fmt.Errorf("update event %d: %w", s.targetID, err)
		}
	}

	replaced := e.cache.Upsert(*event)
	if s.Mode == ModeEdit && !replaced {
		// The edited id vanished from the cache underneath us, most
		// likely a navigation reload. The upsert re-inserted the
		// confirmed row, which matches what the repository holds.
		e.logger.Warn("edited event was missing from cache", "id", event.ID, "date", event.Date)
	}

	e.Close()
	return event, nil
}

// Close discards the session unconditionally. No partial state persists.
func (e *Editor) Close() {
	e.mu.Lock()
	e.session = nil
	e.mu.Unlock()
}

// DeleteEvent removes the event at index within the date's cached
// sequence, deleting it from the repository first. If the deleted event
// was the one under active edit, the session is force-closed.
func (e *Editor) DeleteEvent(ctx context.Context, dateKey string, index int) error {
	day := e.cache.EventsOn(dateKey)
	if index < 0 || index >= len(day) {
		return fmt.Errorf("no event at index %d on %s", index, dateKey)
	}
	target := day[index]

	if err := e.repo.DeleteEvent(ctx, target.ID); err != nil {
		return fmt.Errorf("delete event %d: %w", target.ID, err)
	}
	e.cache.Remove(target.ID, dateKey)

	e.mu.Lock()
	if e.session != nil && e.session.Mode == ModeEdit &&
		e.session.DateKey == dateKey && e.session.targetID == target.ID {
		e.session = nil
	}
	e.mu.Unlock()

	return nil
}
