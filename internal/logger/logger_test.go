package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/polkiloo/courierdesk/internal/config"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	l := New(&config.Config{LogLevel: "info"})
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}

	if _, ok := l.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler, got %T", l.Handler())
	}
}

func TestNewWithWriterLevels(t *testing.T) {
	cases := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			l := NewWithWriter(&bytes.Buffer{}, tc.level)
			if !l.Enabled(context.Background(), tc.enabled) {
				t.Errorf("expected %v to be enabled", tc.enabled)
			}
			if l.Enabled(context.Background(), tc.muted) {
				t.Errorf("did not expect %v to be enabled", tc.muted)
			}
		})
	}
}

func TestNewWithWriterWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info").Info("order created", slog.String("order_id", "AZS0001"))
	if !strings.Contains(buf.String(), `"order_id":"AZS0001"`) {
		t.Fatalf("expected structured attribute in output, got %s", buf.String())
	}
}
