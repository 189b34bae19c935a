package di_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	coursecmd "github.com/goliatone/go-coursemd/internal/commands/course"
	"github.com/goliatone/go-coursemd/internal/commands/fixtures"
	"github.com/goliatone/go-coursemd/internal/di"
	"github.com/goliatone/go-coursemd/internal/runtimeconfig"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

func writeCourse(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestContainerLogsConfigurationWithInjectedProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Course.Dir = t.TempDir()

	rec := newRecordingProvider()
	if _, err := di.NewContainer(cfg, di.WithLoggerProvider(rec)); err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	entry := rec.find("container.configured")
	if entry == nil {
		t.Fatalf("expected container.configured log entry, got %#v", rec.entries)
	}
	if got := entry.fields["module"]; got != "coursemd.di" {
		t.Fatalf("expected module field coursemd.di, got %v", got)
	}
	if got := entry.fields["course_dir"]; got != cfg.Course.Dir {
		t.Fatalf("expected course_dir %s, got %v", cfg.Course.Dir, got)
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Course.Dir = "  "
	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected validation error for blank course dir")
	}
}

func TestContainerFailsForMissingCourseDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Course.Dir = filepath.Join(t.TempDir(), "missing")
	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected error for missing course directory")
	}
}

func TestContainerWithoutLoggerFeatureHasNoProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Course.Dir = t.TempDir()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() != nil {
		t.Fatalf("expected nil provider when logger feature disabled, got %T", container.LoggerProvider())
	}
	if container.Parser() == nil || container.CourseService() == nil || container.ProgressTracker() == nil {
		t.Fatal("expected services to be wired")
	}
}

func TestContainerConsoleProviderWhenLoggerEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Course.Dir = t.TempDir()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	cfg.Logging.Level = "error"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected console provider")
	}
	if logger := container.LoggerProvider().GetLogger("coursemd.test"); logger == nil {
		t.Fatal("expected logger from console provider")
	}
}

func TestContainerRegistersCommandsAndHonoursValidationFeature(t *testing.T) {
	dir := t.TempDir()
	writeCourse(t, dir, "intro.md", "# Module 1: Basics\n\n## Unit 1: Hello\n\nWelcome.\n")

	cfg := runtimeconfig.DefaultConfig()
	cfg.Course.Dir = dir
	cfg.Features.Validation = true

	reg := fixtures.NewRecordingRegistry()
	container, err := di.NewContainer(cfg, di.WithCommandRegistry(reg))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if len(reg.Handlers) != 3 {
		t.Fatalf("expected three registered handlers, got %d", len(reg.Handlers))
	}

	var doc *interfaces.CourseDocument
	err = container.CommandHandlers().Parse.Execute(context.Background(), coursecmd.ParseCourseCommand{
		Path:     "intro.md",
		OnParsed: func(d *interfaces.CourseDocument) { doc = d },
	})
	if err != nil {
		t.Fatalf("execute parse: %v", err)
	}
	if doc == nil || len(doc.Units) != 1 || doc.Units[0].Title != "Hello" {
		t.Fatalf("unexpected parsed document: %#v", doc)
	}
}
