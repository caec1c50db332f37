package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"shiguang/internal/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SHIGUANG_DB", "SHIGUANG_LOCALE", "SHIGUANG_TZ", "SHIGUANG_LOG_LEVEL", "SHIGUANG_ADDR", "SHIGUANG_CONFIG"} {
		t.Setenv(k, "")
	}
	// Load looks for .env in the working directory
	t.Chdir(t.TempDir())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Locale != "zh" {
		t.Errorf("expected Locale=zh, got %s", cfg.Locale)
	}
	if cfg.YearRange.Start != domain.DefaultLunarStartYear || cfg.YearRange.End != domain.DefaultEndYear {
		t.Errorf("unexpected year range %+v", cfg.YearRange)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr, got %s", cfg.Server.Addr)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Locale = "en"
	cfg.Timezone = "Asia/Shanghai"
	cfg.YearRange.Start = 1950

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Locale != "en" || loaded.YearRange.Start != 1950 {
		t.Errorf("unexpected config %+v", loaded)
	}
	if loaded.DeltaLocale().Name != domain.LocaleEN.Name {
		t.Errorf("expected English locale, got %s", loaded.DeltaLocale().Name)
	}
	loc, err := loaded.Location()
	if err != nil || loc.String() != "Asia/Shanghai" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SHIGUANG_DB", "/tmp/x.db")
	t.Setenv("SHIGUANG_ADDR", ":9999")
	t.Setenv("SHIGUANG_TZ", "UTC")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DatabasePath != "/tmp/x.db" {
		t.Errorf("expected DatabasePath override, got %s", cfg.DatabasePath)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected Addr override, got %s", cfg.Server.Addr)
	}
	if loc, _ := cfg.Location(); loc != time.UTC {
		t.Errorf("expected UTC, got %v", loc)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("SHIGUANG_LOCALE")
	if err := os.WriteFile(".env", []byte("SHIGUANG_LOCALE=en\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SHIGUANG_LOCALE") })

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Locale != "en" {
		t.Errorf("expected locale from .env, got %s", cfg.Locale)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad locale", func(c *Config) { c.Locale = "fr" }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"year range inverted", func(c *Config) { c.YearRange.Start, c.YearRange.End = 2000, 1990 }},
		{"year range too wide", func(c *Config) { c.YearRange.End = 2200 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("SHIGUANG_CONFIG", "/etc/shiguang.yaml")
	if got := DefaultPath(); got != "/etc/shiguang.yaml" {
		t.Errorf("DefaultPath() = %s", got)
	}

	t.Setenv("SHIGUANG_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "shiguang", "config.yaml") {
		t.Errorf("DefaultPath() = %s", got)
	}
}
