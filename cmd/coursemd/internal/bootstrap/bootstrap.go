package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-coursemd"
	"github.com/goliatone/go-coursemd/internal/commands"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// Options captures configuration shared by the course CLIs.
type Options struct {
	ConfigPath     string
	CourseDir      string
	Pattern        string
	Recursive      *bool
	Validation     bool
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the course module with the service and logger the CLIs use.
type Module struct {
	Module  *coursemd.Module
	Service interfaces.CourseService
	Logger  interfaces.Logger
}

// BuildModule constructs a course module from the CLI options. Flags win over
// values read from the optional config file.
func BuildModule(opts Options) (*Module, error) {
	cfg := coursemd.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := coursemd.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if dir := strings.TrimSpace(opts.CourseDir); dir != "" {
		cfg.Course.Dir = dir
	}
	if pattern := strings.TrimSpace(opts.Pattern); pattern != "" {
		cfg.Course.Pattern = pattern
	}
	if opts.Recursive != nil {
		cfg.Course.Recursive = *opts.Recursive
	}
	if opts.Validation {
		cfg.Features.Validation = true
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
	}

	moduleOpts := []coursemd.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, coursemd.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := coursemd.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise course module: %w", err)
	}

	return &Module{
		Module:  module,
		Service: module.Courses(),
		Logger:  commands.CommandLogger(module.Container().LoggerProvider(), "cli"),
	}, nil
}

// ValidationEnabled reports whether the built module validates parsed units.
func (m *Module) ValidationEnabled() bool {
	if m == nil || m.Module == nil {
		return false
	}
	return m.Module.Container().Config().Features.Validation
}
