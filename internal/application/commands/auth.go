package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"shiguang/internal/application"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

// SessionKey is the settings key holding the logged-in user's ID
const SessionKey = "session.user_id"

// AuthDeps groups the collaborators of the auth commands
type AuthDeps struct {
	Users    ports.UserRepository
	Settings ports.SettingsRepository
	Hasher   ports.PasswordHasher
	Clock    ports.Clock
}

// RegisterCommand creates an account and logs it in
type RegisterCommand struct {
	deps     AuthDeps
	Name     string
	Email    string
	Password string
}

// NewRegisterCommand creates a new RegisterCommand
func NewRegisterCommand(deps AuthDeps, name, email, password string) *RegisterCommand {
	return &RegisterCommand{deps: deps, Name: name, Email: email, Password: password}
}

// Validate checks if the registration is valid
func (c *RegisterCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	if err := application.ValidateEmail("email", c.Email); err != nil {
		return err
	}
	return application.ValidatePassword("password", c.Password)
}

// Execute runs the register command
func (c *RegisterCommand) Execute(ctx context.Context) (*domain.User, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	email := normalizeEmail(c.Email)

	if _, err := c.deps.Users.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, application.ErrAlreadyExists)
	} else if !errors.Is(err, application.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up %s: %w", email, err)
	}

	hash, err := c.deps.Hasher.Hash(c.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(c.Name),
		Email:        email,
		PasswordHash: hash,
		JoinDate:     c.deps.Clock.Now(),
		Badges:       []string{domain.InitialBadge},
	}
	if err := c.deps.Users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := c.deps.Settings.SetSetting(ctx, SessionKey, u.ID); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return u, nil
}

// LoginCommand verifies credentials and starts a session
type LoginCommand struct {
	deps     AuthDeps
	Email    string
	Password string
}

// NewLoginCommand creates a new LoginCommand
func NewLoginCommand(deps AuthDeps, email, password string) *LoginCommand {
	return &LoginCommand{deps: deps, Email: email, Password: password}
}

// Validate checks if the login request is valid
func (c *LoginCommand) Validate() error {
	if err := application.ValidateEmail("email", c.Email); err != nil {
		return err
	}
	return application.ValidateRequired("password", c.Password)
}

// Execute runs the login command
func (c *LoginCommand) Execute(ctx context.Context) (*domain.User, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	email := normalizeEmail(c.Email)

	u, err := c.deps.Users.GetUserByEmail(ctx, email)
	if errors.Is(err, application.ErrNotFound) {
		return nil, &application.AuthError{Email: email, Reason: "unknown account"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", email, err)
	}

	if err := c.deps.Hasher.Verify(u.PasswordHash, c.Password); err != nil {
		return nil, &application.AuthError{Email: email, Reason: "wrong password"}
	}

	if err := c.deps.Settings.SetSetting(ctx, SessionKey, u.ID); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return u, nil
}

// LogoutCommand ends the current session
type LogoutCommand struct {
	settings ports.SettingsRepository
}

// NewLogoutCommand creates a new LogoutCommand
func NewLogoutCommand(settings ports.SettingsRepository) *LogoutCommand {
	return &LogoutCommand{settings: settings}
}

// Execute runs the logout command
func (c *LogoutCommand) Execute(ctx context.Context) error {
	if err := c.settings.DeleteSetting(ctx, SessionKey); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// CurrentUserCommand returns the logged-in user
type CurrentUserCommand struct {
	users    ports.UserRepository
	settings ports.SettingsRepository
}

// NewCurrentUserCommand creates a new CurrentUserCommand
func NewCurrentUserCommand(users ports.UserRepository, settings ports.SettingsRepository) *CurrentUserCommand {
	return &CurrentUserCommand{users: users, settings: settings}
}

// Execute runs the current user command
func (c *CurrentUserCommand) Execute(ctx context.Context) (*domain.User, error) {
	id, ok, err := c.settings.GetSetting(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok || id == "" {
		return nil, &application.AuthError{Reason: "not logged in"}
	}

	u, err := c.users.GetUser(ctx, id)
	if errors.Is(err, application.ErrNotFound) {
		return nil, &application.AuthError{Reason: "session user no longer exists"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
