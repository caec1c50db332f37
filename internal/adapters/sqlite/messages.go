package sqlite

import (
	"context"
	"database/sql"

	"shiguang/internal/domain"
)

// AddMessage inserts a message
func (s *Store) AddMessage(ctx context.Context, m *domain.Message) error {
	return insertMessage(ctx, s.db, m)
}

// ListMessages returns every message, newest first
func (s *Store) ListMessages(ctx context.Context) ([]*domain.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, title, content, timestamp, is_read, avatar
		FROM messages
		ORDER BY timestamp DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*domain.Message
	for rows.Next() {
		var (
			m      domain.Message
			typ    string
			ts     int64
			isRead int
		)
		if err := rows.Scan(&m.ID, &typ, &m.Title, &m.Content, &ts, &isRead, &m.Avatar); err != nil {
			return nil, err
		}
		m.Type = domain.MessageType(typ)
		m.Timestamp = fromMillis(ts)
		m.IsRead = isRead != 0
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// MarkMessageRead flags a message as read
func (s *Store) MarkMessageRead(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE messages SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "message", id)
}

// UnreadCount returns the number of unread messages
func (s *Store) UnreadCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE is_read = 0`).Scan(&n)
	return n, err
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertMessage(ctx context.Context, db execer, m *domain.Message) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO messages (id, type, title, content, timestamp, is_read, avatar)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, string(m.Type), m.Title, m.Content, toMillis(m.Timestamp), boolInt(m.IsRead), m.Avatar)
	return err
}
