package sync

import (
	"sort"
	stdsync "sync"
	"time"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

// Cache is the in-memory, date-keyed mirror of a fetched repository
// window. It is the single source of truth for rendering. Loads replace
// the whole collection; editor and merger commits patch individual
// entries after the repository confirms them.
//
// Loads are tagged with a monotonically increasing sequence number taken
// at request-issue time. Apply discards any load whose tag is older than
// the last one applied, so a slow response for a stale month can never
// overwrite a newer window.
type Cache struct {
	mu          stdsync.Mutex
	events      map[string][]model.Event
	nextTag     uint64
	lastApplied uint64
}

func NewCache() *Cache {
	return &Cache{events: make(map[string][]model.Event)}
}

// NextTag reserves a sequence tag for a load about to be issued. The tag
// must be taken before the repository call starts, not when it resolves.
func (c *Cache) NextTag() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextTag++
	return c.nextTag
}

// Apply replaces the entire collection with the given events, grouped by
// date key and ordered by time then insertion order. It returns false
// without touching the cache if a newer load has already been applied.
func (c *Cache) Apply(tag uint64, events []model.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tag <= c.lastApplied {
		return false
	}
	c.lastApplied = tag

	grouped := make(map[string][]model.Event)
	for _, e := range events {
		grouped[e.Date] = append(grouped[e.Date], e)
	}
	for key := range grouped {
		day := grouped[key]
		sort.SliceStable(day, func(i, j int) bool { return day[i].Time < day[j].Time })
	}
	c.events = grouped
	return true
}

// Upsert patches a single confirmed event into the cache. If an event
// with the same id already exists under the date key it is replaced in
// place; otherwise the event is inserted in time order. It returns true
// when an existing entry was replaced.
func (c *Cache) Upsert(e model.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	day := c.events[e.Date]
	for i := range day {
		if day[i].ID == e.ID && e.ID != 0 {
			day[i] = e
			sort.SliceStable(day, func(a, b int) bool { return day[a].Time < day[b].Time })
			c.events[e.Date] = day
			return true
		}
	}

	// Insert after the last event with an earlier-or-equal time so that
	// insertion order is preserved for ties.
	pos := len(day)
	for i := range day {
		if day[i].Time > e.Time {
			pos = i
			break
		}
	}
	day = append(day, model.Event{})
	copy(day[pos+1:], day[pos:])
	day[pos] = e
	c.events[e.Date] = day
	return false
}

// Remove deletes the event with the given id from the date's sequence.
// The date key itself is dropped once its sequence becomes empty. It
// returns false if no matching event was found.
func (c *Cache) Remove(id int64, dateKey string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	day, ok := c.events[dateKey]
	if !ok {
		return false
	}
	for i := range day {
		if day[i].ID == id {
			day = append(day[:i], day[i+1:]...)
			if len(day) == 0 {
				delete(c.events, dateKey)
			} else {
				c.events[dateKey] = day
			}
			return true
		}
	}
	return false
}

// EventDaysFor returns the sorted day numbers in the given month that
// currently have at least one event. It is recomputed from the cached
// keys on every call.
func (c *Cache) EventDaysFor(year int, month time.Month) []int {
	prefix := model.MonthPrefix(year, month)

	c.mu.Lock()
	defer c.mu.Unlock()

	var days []int
	for key := range c.events {
		if len(key) != len(prefix)+2 || key[:len(prefix)] != prefix {
			continue
		}
		if _, _, day, err := model.ParseDateKey(key); err == nil {
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days
}

// EventsOn returns a copy of the event sequence for one date key.
func (c *Cache) EventsOn(dateKey string) []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	day := c.events[dateKey]
	out := make([]model.Event, len(day))
	copy(out, day)
	return out
}

// EventsInRange returns all cached events with date in [from, to]
// inclusive, ordered by date then by each day's sequence order.
func (c *Cache) EventsInRange(from, to string) []model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []string
	for key := range c.events {
		if key >= from && key <= to {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var out []model.Event
	for _, key := range keys {
		out = append(out, c.events[key]...)
	}
	return out
}

// Snapshot returns a copy of the whole collection, keyed by date.
func (c *Cache) Snapshot() map[string][]model.Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string][]model.Event, len(c.events))
	for key, day := range c.events {
		cp := make([]model.Event, len(day))
		copy(cp, day)
		out[key] = cp
	}
	return out
}
