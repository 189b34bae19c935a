package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-coursemd/internal/commands"
	coursecmd "github.com/goliatone/go-coursemd/internal/commands/course"
	"github.com/goliatone/go-coursemd/internal/coursemd"
	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/internal/logging/console"
	"github.com/goliatone/go-coursemd/internal/logging/gologger"
	"github.com/goliatone/go-coursemd/internal/markdown"
	"github.com/goliatone/go-coursemd/internal/progress"
	"github.com/goliatone/go-coursemd/internal/runtimeconfig"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

const diModule = "coursemd.di"

// Option mutates the container before services are built.
type Option func(*Container)

// Container wires the course services from a runtime configuration.
type Container struct {
	cfg runtimeconfig.Config

	loggerProvider  interfaces.LoggerProvider
	renderer        interfaces.MarkdownRenderer
	commandRegistry coursecmd.CommandRegistry

	parser   *coursemd.Parser
	service  *markdown.Service
	tracker  *progress.Tracker
	handlers *coursecmd.HandlerSet
}

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithRenderer replaces the goldmark renderer used by the course service.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithCommandRegistry registers the course command handlers with reg.
func WithCommandRegistry(reg coursecmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

// NewContainer validates cfg and builds every course service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}

	c.parser = coursemd.NewParser(coursemd.WithLogger(logging.ParserLogger(c.loggerProvider)))

	service, err := markdown.NewService(markdown.Config{
		BasePath:  cfg.Course.Dir,
		Pattern:   cfg.Course.Pattern,
		Recursive: cfg.Course.Recursive,
		Render: interfaces.RenderOptions{
			Extensions: append([]string(nil), cfg.Render.Extensions...),
			Sanitize:   cfg.Render.Sanitize,
			HardWraps:  cfg.Render.HardWraps,
			SafeMode:   cfg.Render.SafeMode,
		},
	}, c.renderer,
		markdown.WithLogger(logging.MarkdownLogger(c.loggerProvider)),
		markdown.WithParser(c.parser),
	)
	if err != nil {
		return nil, fmt.Errorf("di: course service: %w", err)
	}
	c.service = service

	c.tracker = progress.NewTracker(logging.ProgressLogger(c.loggerProvider))

	timeout := cfg.Commands.Timeout
	handlers, err := coursecmd.RegisterCourseCommands(c.commandRegistry, service, c.loggerProvider, coursecmd.FeatureGates{
		ValidationEnabled: func() bool { return c.cfg.Features.Validation },
	},
		coursecmd.WithParseHandlerOptions(commands.WithTimeout[coursecmd.ParseCourseCommand](timeout)),
		coursecmd.WithFormatHandlerOptions(commands.WithTimeout[coursecmd.FormatCourseCommand](timeout)),
		coursecmd.WithValidateHandlerOptions(commands.WithTimeout[coursecmd.ValidateDirectoryCommand](timeout)),
	)
	if err != nil {
		return nil, fmt.Errorf("di: register course commands: %w", err)
	}
	c.handlers = handlers

	logging.ModuleLogger(c.loggerProvider, diModule).Info("container.configured",
		"course_dir", cfg.Course.Dir,
		"validation", cfg.Features.Validation,
		"commands_registered", c.commandRegistry != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.cfg.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.cfg.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.cfg.Logging.Level,
			Format:    c.cfg.Logging.Format,
			AddSource: c.cfg.Logging.AddSource,
			Focus:     c.cfg.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.cfg.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

// Config returns the configuration the container was built from.
func (c *Container) Config() runtimeconfig.Config {
	return c.cfg
}

// LoggerProvider returns the active provider, or nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Parser returns the shared course parser.
func (c *Container) Parser() *coursemd.Parser {
	return c.parser
}

// CourseService returns the filesystem-backed course service.
func (c *Container) CourseService() *markdown.Service {
	return c.service
}

// ProgressTracker returns the unit completion tracker.
func (c *Container) ProgressTracker() *progress.Tracker {
	return c.tracker
}

// CommandHandlers returns the course command handlers.
func (c *Container) CommandHandlers() *coursecmd.HandlerSet {
	return c.handlers
}
