package ports

import (
	"context"
	"errors"
	"time"

	"shiguang/internal/domain"
)

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = errors.New("not found")

// EventRepository persists countdowns and anniversaries
type EventRepository interface {
	CreateEvent(ctx context.Context, e *domain.Event) error
	UpdateEvent(ctx context.Context, e *domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
}

// MessageRepository persists the message feed
type MessageRepository interface {
	AddMessage(ctx context.Context, m *domain.Message) error
	// ListMessages returns messages newest first
	ListMessages(ctx context.Context) ([]*domain.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
	UnreadCount(ctx context.Context) (int, error)
}

// UserRepository persists accounts
type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
}

// SettingsRepository persists key/value preferences
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

// Store groups every repository behind one database
type Store interface {
	EventRepository
	MessageRepository
	UserRepository
	SettingsRepository

	// Batch updates for reminder delivery
	BeginTx(ctx context.Context) (StoreTx, error)
	Close() error
}

// StoreTx is a transaction used to deliver a reminder exactly once
type StoreTx interface {
	// MarkReminderSent records the reminder; false if it was already sent
	MarkReminderSent(eventID string, occurrence domain.CalendarDate, sentAt time.Time) (bool, error)
	AddMessage(m *domain.Message) error

	// Transaction control
	Commit() error
	Rollback() error
}
