package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("coursemd.parser")
	logger = logging.WithFields(logger, map[string]any{"module": "coursemd.parser"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"course_slug": "intro-to-go",
	})
	logger = logger.WithContext(ctx)

	logger.Info("parser.units.parsed", "units", 4, "fallback", false)

	got := strings.TrimSpace(buf.String())
	want := "2024-03-14T15:09:26.535897Z INFO parser.units.parsed course_slug=intro-to-go fallback=false logger=coursemd.parser module=coursemd.parser units=4"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("coursemd.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_QuotesAndPositionalFields(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return time.Unix(0, 0) },
	})

	provider.GetLogger("x").Error("failed", "error", errors.New("bad input"), "dangling")

	got := buf.String()
	if !strings.Contains(got, `error="bad input"`) {
		t.Fatalf("expected quoted error value, got %s", got)
	}
	if !strings.Contains(got, "field_1=dangling") {
		t.Fatalf("expected positional field for dangling arg, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"":        console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for input, want := range cases {
		got, ok := console.ParseLevel(input)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", input, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("verbose"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}
