package commands

import (
	"context"
	"fmt"

	"shiguang/internal/application"
	"shiguang/internal/domain"
	"shiguang/internal/ports"
)

const (
	themeKey        = "theme"
	primaryColorKey = "primary_color"
	localeKey       = "locale"
)

// GetSettingsCommand loads the preferences, filling in defaults
type GetSettingsCommand struct {
	repo ports.SettingsRepository
}

// NewGetSettingsCommand creates a new GetSettingsCommand
func NewGetSettingsCommand(repo ports.SettingsRepository) *GetSettingsCommand {
	return &GetSettingsCommand{repo: repo}
}

// Execute runs the get settings command
func (c *GetSettingsCommand) Execute(ctx context.Context) (domain.Settings, error) {
	s := domain.DefaultSettings()

	for key, dst := range map[string]*string{
		primaryColorKey: &s.PrimaryColor,
		localeKey:       &s.Locale,
	} {
		v, ok, err := c.repo.GetSetting(ctx, key)
		if err != nil {
			return s, fmt.Errorf("failed to read %s: %w", key, err)
		}
		if ok {
			*dst = v
		}
	}

	v, ok, err := c.repo.GetSetting(ctx, themeKey)
	if err != nil {
		return s, fmt.Errorf("failed to read %s: %w", themeKey, err)
	}
	if ok {
		s.Theme = domain.Theme(v)
	}
	return s, nil
}

// UpdateSettingsCommand changes preferences; empty fields are left alone
type UpdateSettingsCommand struct {
	repo         ports.SettingsRepository
	Theme        string
	PrimaryColor string
	Locale       string
}

// NewUpdateSettingsCommand creates a new UpdateSettingsCommand
func NewUpdateSettingsCommand(repo ports.SettingsRepository, theme, primaryColor, locale string) *UpdateSettingsCommand {
	return &UpdateSettingsCommand{repo: repo, Theme: theme, PrimaryColor: primaryColor, Locale: locale}
}

// Validate checks the requested values
func (c *UpdateSettingsCommand) Validate() error {
	if c.Theme != "" {
		if _, err := domain.ParseTheme(c.Theme); err != nil {
			return &application.ValidationError{Field: "theme", Message: err.Error()}
		}
	}
	if c.PrimaryColor != "" && !domain.IsPrimaryColor(c.PrimaryColor) {
		return &application.ValidationError{
			Field:   "primaryColor",
			Message: fmt.Sprintf("unknown color: %s", c.PrimaryColor),
		}
	}
	if c.Locale != "" && c.Locale != "zh" && c.Locale != "en" {
		return &application.ValidationError{
			Field:   "locale",
			Message: fmt.Sprintf("unsupported locale: %s (expected zh or en)", c.Locale),
		}
	}
	return nil
}

// Execute runs the update settings command
func (c *UpdateSettingsCommand) Execute(ctx context.Context) (domain.Settings, error) {
	if err := c.Validate(); err != nil {
		return domain.Settings{}, err
	}

	for key, value := range map[string]string{
		themeKey:        c.Theme,
		primaryColorKey: c.PrimaryColor,
		localeKey:       c.Locale,
	} {
		if value == "" {
			continue
		}
		if err := c.repo.SetSetting(ctx, key, value); err != nil {
			return domain.Settings{}, fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	return NewGetSettingsCommand(c.repo).Execute(ctx)
}
