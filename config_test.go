package coursemd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-coursemd"
)

func TestConfigValidateRequiresCourseDir(t *testing.T) {
	cfg := coursemd.DefaultConfig()
	cfg.Course.Dir = ""
	if err := cfg.Validate(); !errors.Is(err, coursemd.ErrCourseDirRequired) {
		t.Fatalf("expected ErrCourseDirRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := coursemd.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, coursemd.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidateIgnoresLoggingWhenFeatureDisabled(t *testing.T) {
	cfg := coursemd.DefaultConfig()
	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected logging settings ignored while disabled, got %v", err)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coursemd.yaml")
	body := "course:\n  dir: courses\ncommands:\n  timeout: 5s\nfeatures:\n  validation: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := coursemd.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Course.Dir != "courses" {
		t.Fatalf("expected course dir courses, got %q", cfg.Course.Dir)
	}
	if cfg.Course.Pattern != "*.md" {
		t.Fatalf("expected default pattern kept, got %q", cfg.Course.Pattern)
	}
	if cfg.Commands.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Commands.Timeout)
	}
	if !cfg.Features.Validation {
		t.Fatal("expected validation feature enabled")
	}
}
