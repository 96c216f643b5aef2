package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/polkiloo/courierdesk/internal/config"
)

func TestModuleProvidesLogger(t *testing.T) {
	var resolved *slog.Logger
	app := fx.New(
		fx.Supply(&config.Config{LogLevel: "error"}),
		Module,
		fx.Populate(&resolved),
	)
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	if err := app.Err(); err != nil {
		t.Fatalf("fx app failed: %v", err)
	}
	if resolved == nil {
		t.Fatal("expected logger to be populated")
	}
}

func TestEventLoggerUsesDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	newEventLogger(log).LogEvent(&fxevent.Started{})
	if buf.Len() != 0 {
		t.Fatalf("expected fx events hidden at info level, got %q", buf.String())
	}

	buf.Reset()
	log = NewWithWriter(&buf, "debug")
	newEventLogger(log).LogEvent(&fxevent.Started{})
	if !strings.Contains(buf.String(), `"component":"fx"`) {
		t.Fatalf("expected fx component attribute, got %q", buf.String())
	}
}
