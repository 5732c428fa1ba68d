package sync

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

// Controller owns the navigation state (year, month, selected day) and
// drives cache loads. Every transition issues exactly one tagged load
// for the month window it lands on; a stale load resolving late is
// discarded by the cache's tag check.
type Controller struct {
	mu          stdsync.Mutex
	year        int
	month       time.Month
	selectedDay int

	cache  *Cache
	repo   Repository
	editor *Editor
	logger *slog.Logger
}

// NewController starts at the month containing now with its current day
// selected. The editor may be nil if no edit surface is attached.
func NewController(repo Repository, cache *Cache, editor *Editor, logger *slog.Logger, now time.Time) *Controller {
	return &Controller{
		year:        now.Year(),
		month:       now.Month(),
		selectedDay: now.Day(),
		cache:       cache,
		repo:        repo,
		editor:      editor,
		logger:      logger,
	}
}

// State returns the current navigation state.
func (c *Controller) State() (year int, month time.Month, selectedDay int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.year, c.month, c.selectedDay
}

// SelectedDateKey returns the date key of the selected day.
func (c *Controller) SelectedDateKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.DateKey(c.year, c.month, c.selectedDay)
}

// PrevMonth moves to the previous month, carrying the year at January,
// resets the selected day to 1, closes any open editor session, and
// reloads the cache for the new window.
func (c *Controller) PrevMonth(ctx context.Context) error {
	c.mu.Lock()
	if c.month == time.January {
		c.year--
		c.month = time.December
	} else {
		c.month--
	}
	c.selectedDay = 1
	year, month := c.year, c.month
	c.mu.Unlock()

	c.closeEditor()
	return c.Refresh(ctx, year, month)
}

// NextMonth moves to the next month, carrying the year at December.
func (c *Controller) NextMonth(ctx context.Context) error {
	c.mu.Lock()
	if c.month == time.December {
		c.year++
		c.month = time.January
	} else {
		c.month++
	}
	c.selectedDay = 1
	year, month := c.year, c.month
	c.mu.Unlock()

	c.closeEditor()
	return c.Refresh(ctx, year, month)
}

// SelectDay selects a day within the current month and reloads the
// window. Out-of-range days are rejected as a no-op rather than clamped.
func (c *Controller) SelectDay(ctx context.Context, day int) error {
	c.mu.Lock()
	if day < 1 || day > model.DaysInMonth(c.year, c.month) {
		c.mu.Unlock()
		c.logger.Debug("select day rejected", "day", day)
		return nil
	}
	c.selectedDay = day
	year, month := c.year, c.month
	c.mu.Unlock()

	return c.Refresh(ctx, year, month)
}

// Refresh issues one tagged load for the given month window. The tag is
// reserved before the repository call so that responses arriving out of
// order cannot clobber a newer window.
func (c *Controller) Refresh(ctx context.Context, year int, month time.Month) error {
	tag := c.cache.NextTag()
	r := model.MonthRange(year, month)

	events, err := c.repo.ListEvents(ctx, r.From, r.To)
	if err != nil {
		c.logger.Error("load month window", "from", r.From, "to", r.To, "error", err)
		return err
	}

	if !c.cache.Apply(tag, events) {
		c.logger.Debug("stale load discarded", "from", r.From, "tag", tag)
	}
	return nil
}

// RefreshCurrent reloads the window for the month currently shown.
func (c *Controller) RefreshCurrent(ctx context.Context) error {
	c.mu.Lock()
	year, month := c.year, c.month
	c.mu.Unlock()
	return c.Refresh(ctx, year, month)
}

func (c *Controller) closeEditor() {
	if c.editor != nil {
		c.editor.Close()
	}
}
