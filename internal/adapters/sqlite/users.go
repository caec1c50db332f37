package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// CreateUser inserts an account
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	badges, err := json.Marshal(nonNil(u.Badges))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, avatar, password_hash, join_date, badges)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.Avatar, u.PasswordHash, toMillis(u.JoinDate), string(badges))
	return err
}

// GetUser retrieves an account by ID
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, "id", id)
}

// GetUserByEmail retrieves an account by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUser(ctx, "email", email)
}

// UpdateUser saves profile fields and badges
func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	badges, err := json.Marshal(nonNil(u.Badges))
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET name = ?, avatar = ?, password_hash = ?, badges = ?
		WHERE id = ?
	`, u.Name, u.Avatar, u.PasswordHash, string(badges), u.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "user", u.ID)
}

func (s *Store) getUser(ctx context.Context, column, value string) (*domain.User, error) {
	var (
		u        domain.User
		joinDate int64
		badges   string
	)
	// column is one of two constants above, never user input
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, avatar, password_hash, join_date, badges
		FROM users WHERE `+column+` = ?
	`, value).Scan(&u.ID, &u.Name, &u.Email, &u.Avatar, &u.PasswordHash, &joinDate, &badges)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", value, ports.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	u.JoinDate = fromMillis(joinDate)
	if err := json.Unmarshal([]byte(badges), &u.Badges); err != nil {
		return nil, fmt.Errorf("user %s badges: %w", u.ID, err)
	}
	return &u, nil
}
