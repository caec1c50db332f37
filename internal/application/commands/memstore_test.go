package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// memStore is an in-memory ports.Store for command tests
type memStore struct {
	mu        sync.Mutex
	events    map[string]*domain.Event
	messages  []*domain.Message
	users     map[string]*domain.User
	settings  map[string]string
	reminders map[string]bool
}

var _ ports.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		events:    map[string]*domain.Event{},
		users:     map[string]*domain.User{},
		settings:  map[string]string{},
		reminders: map[string]bool{},
	}
}

func (s *memStore) CreateEvent(_ context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *memStore) UpdateEvent(_ context.Context, e *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return fmt.Errorf("event %s: %w", e.ID, ports.ErrNotFound)
	}
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *memStore) DeleteEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return fmt.Errorf("event %s: %w", id, ports.ErrNotFound)
	}
	delete(s.events, id)
	return nil
}

func (s *memStore) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, fmt.Errorf("event %s: %w", id, ports.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (s *memStore) ListEvents(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Event
	for _, e := range s.events {
		if filter.Matches(e) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) AddMessage(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.messages = append([]*domain.Message{&cp}, s.messages...)
	return nil
}

func (s *memStore) ListMessages(_ context.Context) ([]*domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*domain.Message(nil), s.messages...), nil
}

func (s *memStore) MarkMessageRead(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == id {
			m.IsRead = true
			return nil
		}
	}
	return fmt.Errorf("message %s: %w", id, ports.ErrNotFound)
}

func (s *memStore) UnreadCount(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, m := range s.messages {
		if !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (s *memStore) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("email %s taken", u.Email)
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) GetUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ports.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, ports.ErrNotFound)
}

func (s *memStore) UpdateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return fmt.Errorf("user %s: %w", u.ID, ports.ErrNotFound)
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memStore) GetSetting(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *memStore) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
	return nil
}

func (s *memStore) DeleteSetting(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.settings, key)
	return nil
}

func (s *memStore) BeginTx(_ context.Context) (ports.StoreTx, error) {
	return &memTx{store: s}, nil
}

func (s *memStore) Close() error { return nil }

// memTx buffers writes until Commit
type memTx struct {
	store     *memStore
	reminders []string
	messages  []*domain.Message
}

func (t *memTx) MarkReminderSent(eventID string, occurrence domain.CalendarDate, _ time.Time) (bool, error) {
	key := eventID + "|" + occurrence.String()
	t.store.mu.Lock()
	sent := t.store.reminders[key]
	t.store.mu.Unlock()
	for _, k := range t.reminders {
		if k == key {
			sent = true
		}
	}
	if sent {
		return false, nil
	}
	t.reminders = append(t.reminders, key)
	return true, nil
}

func (t *memTx) AddMessage(m *domain.Message) error {
	t.messages = append(t.messages, m)
	return nil
}

func (t *memTx) Commit() error {
	for _, k := range t.reminders {
		t.store.mu.Lock()
		t.store.reminders[k] = true
		t.store.mu.Unlock()
	}
	for _, m := range t.messages {
		if err := t.store.AddMessage(context.Background(), m); err != nil {
			return err
		}
	}
	t.reminders, t.messages = nil, nil
	return nil
}

func (t *memTx) Rollback() error {
	t.reminders, t.messages = nil, nil
	return nil
}
