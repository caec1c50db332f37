package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

const eventColumns = `id, owner_id, title, date_kind, year, month, day, type, category,
	description, cover_image, reminder, participants, is_shared, created_at`

// CreateEvent inserts a new event
func (s *Store) CreateEvent(ctx context.Context, e *domain.Event) error {
	participants, err := json.Marshal(nonNil(e.Participants))
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.OwnerID, e.Title, e.Date.Kind.String(), e.Date.Year, e.Date.Month, e.Date.Day,
		string(e.Type), e.Category, e.Description, e.CoverImage, string(e.Reminder),
		string(participants), boolInt(e.IsShared), toMillis(e.CreatedAt))
	return err
}

// UpdateEvent replaces every mutable column of an event
func (s *Store) UpdateEvent(ctx context.Context, e *domain.Event) error {
	participants, err := json.Marshal(nonNil(e.Participants))
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE events
		SET title = ?, date_kind = ?, year = ?, month = ?, day = ?, type = ?, category = ?,
			description = ?, cover_image = ?, reminder = ?, participants = ?, is_shared = ?
		WHERE id = ?
	`, e.Title, e.Date.Kind.String(), e.Date.Year, e.Date.Month, e.Date.Day,
		string(e.Type), e.Category, e.Description, e.CoverImage, string(e.Reminder),
		string(participants), boolInt(e.IsShared), e.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "event", e.ID)
}

// DeleteEvent removes an event and its reminder history
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if err := requireRow(res, "event", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reminders_sent WHERE event_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// GetEvent retrieves an event by ID
func (s *Store) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, ports.ErrNotFound)
	}
	return e, err
}

// ListEvents returns events matching filter in creation order
func (s *Store) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	var (
		where []string
		args  []any
	)
	if filter.OwnerID != "" {
		where = append(where, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*domain.Event, error) {
	var (
		e            domain.Event
		kind         string
		eventType    string
		reminder     string
		participants string
		isShared     int
		createdAt    int64
	)
	err := row.Scan(&e.ID, &e.OwnerID, &e.Title, &kind, &e.Date.Year, &e.Date.Month, &e.Date.Day,
		&eventType, &e.Category, &e.Description, &e.CoverImage, &reminder,
		&participants, &isShared, &createdAt)
	if err != nil {
		return nil, err
	}

	e.Date.Kind, err = domain.ParseCalendarKind(kind)
	if err != nil {
		return nil, err
	}
	e.Type = domain.EventType(eventType)
	e.Reminder = domain.Reminder(reminder)
	e.IsShared = isShared != 0
	e.CreatedAt = fromMillis(createdAt)
	if err := json.Unmarshal([]byte(participants), &e.Participants); err != nil {
		return nil, fmt.Errorf("event %s participants: %w", e.ID, err)
	}
	if len(e.Participants) == 0 {
		e.Participants = nil
	}
	return &e, nil
}

func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ports.ErrNotFound)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
