package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"shiguang/internal/domain"
)

// Config holds all shiguang configuration.
type Config struct {
	// DatabasePath is the SQLite file; empty means the XDG data directory.
	DatabasePath string `yaml:"database_path"`

	// Locale selects the delta wording: zh or en.
	Locale string `yaml:"locale"`

	// Timezone is an IANA name; empty means the system zone.
	Timezone string `yaml:"timezone"`

	YearRange YearRangeConfig `yaml:"year_range"`

	// Theme is the initial TUI theme before any saved setting exists.
	Theme string `yaml:"theme"`

	// Editor opens event notes; empty falls back to $EDITOR.
	Editor string `yaml:"editor"`

	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
}

// YearRangeConfig bounds the year column of the date pickers.
type YearRangeConfig struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Locale: "zh",
		YearRange: YearRangeConfig{
			Start: domain.DefaultLunarStartYear,
			End:   domain.DefaultEndYear,
		},
		Theme: string(domain.ThemeLight),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the config file location, honoring SHIGUANG_CONFIG.
func DefaultPath() string {
	if env := os.Getenv("SHIGUANG_CONFIG"); env != "" {
		return env
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "shiguang", "config.yaml")
}

// Load reads a .env file from the working directory if one exists, then
// the YAML file at path, then applies SHIGUANG_* overrides. A missing
// YAML file yields the defaults.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks the values that would otherwise fail later.
func (c *Config) Validate() error {
	if c.Locale != "zh" && c.Locale != "en" {
		return fmt.Errorf("config locale %q: expected zh or en", c.Locale)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	yr := c.YearRange
	if yr.Start < domain.MinYear || yr.End > domain.MaxYear || yr.Start > yr.End {
		return fmt.Errorf("config year_range %d-%d outside %d-%d", yr.Start, yr.End, domain.MinYear, domain.MaxYear)
	}
	return nil
}

// Location resolves Timezone, falling back to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// DeltaLocale returns the wording used for countdown text.
func (c *Config) DeltaLocale() domain.Locale {
	return domain.LocaleByName(c.Locale)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SHIGUANG_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("SHIGUANG_LOCALE"); v != "" {
		c.Locale = v
	}
	if v := os.Getenv("SHIGUANG_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("SHIGUANG_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("SHIGUANG_ADDR"); v != "" {
		c.Server.Addr = v
	}
}
