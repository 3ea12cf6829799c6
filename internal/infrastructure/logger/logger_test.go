package logger_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/sportiq/picoin/internal/infrastructure/logger"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := logger.New(tt.level, "json").GetLevel(); got != tt.want {
			t.Errorf("New(%q): expected level %s, got %s", tt.level, tt.want, got)
		}
	}
}

func TestNewConsoleFormat(t *testing.T) {
	// Must not panic and must still honor the level.
	if got := logger.New("warn", "console").GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %s", got)
	}
}
