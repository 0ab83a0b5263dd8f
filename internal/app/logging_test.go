package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
		valid bool
	}{
		{"debug", LogLevelDebug, true},
		{"DEBUG", LogLevelDebug, true},
		{" Info ", LogLevelInfo, true},
		{"warning", LogLevelWarn, true},
		{"Warn", LogLevelWarn, true},
		{"error", LogLevelError, true},
		{"verbose", LogLevelInfo, false},
		{"", LogLevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got := ValidLogLevel(tt.input); got != tt.valid {
				t.Errorf("ValidLogLevel(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn %d", 1)
	logger.Error("error")

	out := buf.String()
	for _, s := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(out, s) {
			t.Errorf("output contains %s, want it filtered:\n%s", s, out)
		}
	}
	for _, s := range []string{"[WARN] test: warn 1", "[ERROR] test: error"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
	if logger.Enabled(LogLevelInfo) || !logger.Enabled(LogLevelError) {
		t.Error("Enabled() disagrees with the configured level")
	}
}

func TestLoggerFieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("watch").WithFields(map[string]any{
		"path":    "part.json",
		"removed": 2,
	}).Info("edited")

	if !strings.Contains(buf.String(), "edited {component=watch, path=part.json, removed=2}") {
		t.Errorf("unexpected line: %s", buf.String())
	}
}

func TestLoggerWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	_ = parent.WithField("key", "value")

	parent.Info("plain")
	if strings.Contains(buf.String(), "key=value") {
		t.Errorf("parent logger picked up child field: %s", buf.String())
	}
}

func TestLoggerSetLevelAndOutput(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf1})

	logger.Info("hidden")
	if buf1.Len() != 0 {
		t.Fatal("expected no output at error level")
	}

	logger.SetLevel(LogLevelInfo)
	logger.SetOutput(&buf2)
	logger.Info("shown")
	if buf1.Len() != 0 || buf2.Len() == 0 {
		t.Errorf("buf1 = %q, buf2 = %q", buf1.String(), buf2.String())
	}
}

func TestLoggerDisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Disable()
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Error("expected no output when disabled")
	}

	logger.Enable()
	logger.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected output when enabled")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.WithComponent("x").Error("discarded")
	if NullLogger.Enabled(LogLevelError) {
		t.Error("NullLogger should be disabled")
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo || cfg.Output == nil || cfg.Prefix != "textranger" {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
	if NewLogger(LoggerConfig{}).output == nil {
		t.Error("NewLogger should default output to stderr")
	}
}
