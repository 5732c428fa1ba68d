package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AMLI14/csc698-TeamAmyAndWilliam/internal/model"
)

// EventStore persists calendar events in SQLite. Dates are stored as
// YYYY-MM-DD strings so range queries can use inclusive string comparison.
type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

// Create inserts an event and returns the stored row with its assigned id.
// If idemKey is non-empty and a row with the same key already exists, the
// existing row is returned instead of inserting a duplicate.
func (s *EventStore) Create(date, timeStr, text, idemKey string) (*model.Event, error) {
	var key sql.NullString
	if idemKey != "" {
		key = sql.NullString{String: idemKey, Valid: true}

		existing, err := s.getByIdempotencyKey(idemKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
	}

	result, err := s.db.Exec(
		`INSERT INTO events (date, time, text, idempotency_key) VALUES (?, ?, ?, ?)`,
		date, timeStr, text, key,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetByID(id)
}

// GetByID returns the event with the given id, or nil if it does not exist.
func (s *EventStore) GetByID(id int64) (*model.Event, error) {
	var e model.Event
	err := s.db.QueryRow(
		`SELECT id, date, time, text FROM events WHERE id = ?`, id,
	).Scan(&e.ID, &e.Date, &e.Time, &e.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}
	return &e, nil
}

func (s *EventStore) getByIdempotencyKey(key string) (*model.Event, error) {
	var e model.Event
	err := s.db.QueryRow(
		`SELECT id, date, time, text FROM events WHERE idempotency_key = ?`, key,
	).Scan(&e.ID, &e.Date, &e.Time, &e.Text)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query event by idempotency key: %w", err)
	}
	return &e, nil
}

// ListRange returns all events with date in [from, to] inclusive, ordered
// by date, then time, then insertion order.
func (s *EventStore) ListRange(from, to string) ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT id, date, time, text FROM events
		 WHERE date BETWEEN ? AND ?
		 ORDER BY date, time, id`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// ListMonth returns all events in the given month, ordered by date, time,
// then insertion order.
func (s *EventStore) ListMonth(year int, month time.Month) ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT id, date, time, text FROM events
		 WHERE date LIKE ?
		 ORDER BY date, time, id`,
		model.MonthPrefix(year, month)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("query events for month: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Date, &e.Time, &e.Text); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update replaces the time and text of an event. The date is immutable;
// events stay attached to the day they were created on.
func (s *EventStore) Update(id int64, timeStr, text string) (*model.Event, error) {
	_, err := s.db.Exec(
		`UPDATE events SET time = ?, text = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		timeStr, text, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes an event by id. Deleting a nonexistent id is not an error.
func (s *EventStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
