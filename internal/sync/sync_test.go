package sync

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	stdsync "sync"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeRepo is an in-memory Repository with fault injection and call
// counters.
type fakeRepo struct {
	mu     stdsync.Mutex
	events []model.Event
	nextID int64

	listErr     error
	createErr   error
	createErrFn func() error
	updateErr   error
	deleteErr   error

	listCalls   int
	createCalls int
}

func newFakeRepo(seed ...model.Event) *fakeRepo {
	r := &fakeRepo{}
	for _, e := range seed {
		r.nextID++
		e.ID = r.nextID
		r.events = append(r.events, e)
	}
	return r
}

func (r *fakeRepo) ListEvents(_ context.Context, from, to string) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.Event
	for _, e := range r.events {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateEvent(_ context.Context, date, timeStr, text, idemKey string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErrFn != nil {
		if err := r.createErrFn(); err != nil {
			return nil, err
		}
	}
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	e := model.Event{ID: r.nextID, Date: date, Time: timeStr, Text: text}
	r.events = append(r.events, e)
	return &e, nil
}

func (r *fakeRepo) UpdateEvent(_ context.Context, id int64, timeStr, text string) (*model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for i := range r.events {
		if r.events[i].ID == id {
			r.events[i].Time = timeStr
			r.events[i].Text = text
			e := r.events[i]
			return &e, nil
		}
	}
	return nil, fmt.Errorf("event %d not found", id)
}

func (r *fakeRepo) DeleteEvent(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeProvider returns a canned suggestion list or error.
type fakeProvider struct {
	suggestions []model.Suggestion
	err         error

	gotPrompt   string
	gotExisting []model.Event
}

func (p *fakeProvider) Suggest(_ context.Context, prompt, _, _ string, existing []model.Event) ([]model.Suggestion, error) {
	p.gotPrompt = prompt
	p.gotExisting = existing
	if p.err != nil {
		return nil, p.err
	}
	return p.suggestions, nil
}
