package log

import (
	"log/slog"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Setenv("LOG_LEVEL", tt.value)
		if got := levelFromEnv(); got != tt.want {
			t.Errorf("levelFromEnv(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestSetupInstallsDefault(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	logger := Setup()
	if logger == nil {
		t.Fatal("Setup returned nil")
	}
	if slog.Default() != logger {
		t.Error("Setup should install the logger as process default")
	}
}
