package sqlite

import (
	"context"
	"database/sql"
	"time"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// storeTx implements ports.StoreTx
type storeTx struct {
	ctx context.Context
	tx  *sql.Tx
}

// Ensure storeTx implements StoreTx
var _ ports.StoreTx = (*storeTx)(nil)

// BeginTx starts a transaction for reminder delivery
func (s *Store) BeginTx(ctx context.Context) (ports.StoreTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &storeTx{ctx: ctx, tx: tx}, nil
}

// MarkReminderSent records a delivered reminder; false if already recorded
func (t *storeTx) MarkReminderSent(eventID string, occurrence domain.CalendarDate, sentAt time.Time) (bool, error) {
	res, err := t.tx.ExecContext(t.ctx, `
		INSERT OR IGNORE INTO reminders_sent (event_id, occurrence, sent_at)
		VALUES (?, ?, ?)
	`, eventID, occurrence.String(), toMillis(sentAt))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// AddMessage inserts a message inside the transaction
func (t *storeTx) AddMessage(m *domain.Message) error {
	return insertMessage(t.ctx, t.tx, m)
}

// Commit commits the transaction
func (t *storeTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *storeTx) Rollback() error {
	return t.tx.Rollback()
}
