// Package bootstrap wires the adapters shared by every binary.
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"shiguang/internal/adapters/clock"
	"shiguang/internal/adapters/lunar"
	"shiguang/internal/adapters/sqlite"
	"shiguang/internal/application/cascade"
	"shiguang/internal/config"
	"shiguang/internal/logging"
)

// Runtime holds the opened adapters.
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
	Store  *sqlite.Store
	Cal    *lunar.Calendar
	Env    cascade.Env
}

// Open loads the config at configPath, then opens the logger and the
// database. dbOverride, when set, wins over the configured database path.
func Open(configPath, dbOverride string) (*Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbOverride != "" {
		cfg.DatabasePath = dbOverride
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = sqlite.DefaultPath()
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.DatabasePath, err)
	}
	logger.Debug("database opened", zap.String("path", store.Path()))

	return &Runtime{
		Config: cfg,
		Logger: logger,
		Store:  store,
		Cal:    lunar.New(),
		Env: cascade.Env{
			Clock:    clock.System{},
			Location: loc,
			Locale:   cfg.DeltaLocale(),
		},
	}, nil
}

// Close flushes the logger and closes the database.
func (r *Runtime) Close() error {
	_ = r.Logger.Sync()
	return r.Store.Close()
}
