package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "debug msg", "k", "v")
	log.Info(ctx, "info msg")
	log.Warn(ctx, "warn msg")
	log.Error(ctx, "error msg")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "debug msg", "k=v",
		"level=INFO", "info msg",
		"level=WARN", "warn msg",
		"level=ERROR", "error msg",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_With_AddsPersistentAttrs(t *testing.T) {
	log, buf := newTestLogger(t)

	child := log.With("component", "site")
	child.Info(context.Background(), "hello")

	if !strings.Contains(buf.String(), "component=site") {
		t.Errorf("child logger output missing attribute: %s", buf.String())
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	log := Nop()
	ctx := context.Background()
	log.Debug(ctx, "a")
	log.Info(ctx, "b")
	log.Warn(ctx, "c")
	log.Error(ctx, "d")
	log.With("k", "v").Info(ctx, "e")
}
