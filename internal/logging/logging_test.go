package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"shiguang/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		level   zapcore.Level
		wantErr bool
	}{
		{name: "defaults", cfg: config.LoggingConfig{Level: "info"}, level: zapcore.InfoLevel},
		{name: "debug json", cfg: config.LoggingConfig{Level: "DEBUG", Format: "json"}, level: zapcore.DebugLevel},
		{name: "warn console", cfg: config.LoggingConfig{Level: "warn", Format: "console"}, level: zapcore.WarnLevel},
		{name: "bad level", cfg: config.LoggingConfig{Level: "loud"}, wantErr: true},
		{name: "bad format", cfg: config.LoggingConfig{Level: "info", Format: "xml"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !logger.Core().Enabled(tt.level) {
				t.Errorf("level %s should be enabled", tt.level)
			}
			if tt.level > zapcore.DebugLevel && logger.Core().Enabled(tt.level-1) {
				t.Errorf("level %s should be disabled", tt.level-1)
			}
		})
	}
}
