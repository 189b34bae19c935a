package coursecmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-coursemd/internal/commands"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers produced by RegisterCourseCommands.
type HandlerSet struct {
	Parse    *ParseCourseHandler
	Format   *FormatCourseHandler
	Validate *ValidateDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	parseHandlerOpts    []commands.HandlerOption[ParseCourseCommand]
	formatHandlerOpts   []commands.HandlerOption[FormatCourseCommand]
	validateHandlerOpts []commands.HandlerOption[ValidateDirectoryCommand]
}

// WithParseHandlerOptions forwards options to the ParseCourseHandler constructor.
func WithParseHandlerOptions(opts ...commands.HandlerOption[ParseCourseCommand]) Option {
	return func(cfg *options) {
		cfg.parseHandlerOpts = append(cfg.parseHandlerOpts, opts...)
	}
}

// WithFormatHandlerOptions forwards options to the FormatCourseHandler constructor.
func WithFormatHandlerOptions(opts ...commands.HandlerOption[FormatCourseCommand]) Option {
	return func(cfg *options) {
		cfg.formatHandlerOpts = append(cfg.formatHandlerOpts, opts...)
	}
}

// WithValidateHandlerOptions forwards options to the ValidateDirectoryHandler constructor.
func WithValidateHandlerOptions(opts ...commands.HandlerOption[ValidateDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.validateHandlerOpts = append(cfg.validateHandlerOpts, opts...)
	}
}

// RegisterCourseCommands builds the course handlers and registers them with
// reg when one is supplied. The returned HandlerSet lets callers wire the
// handlers into dispatchers or cron jobs.
func RegisterCourseCommands(reg CommandRegistry, service interfaces.CourseService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("course command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "course")

	set := &HandlerSet{
		Parse:    NewParseCourseHandler(service, logger, gates, cfg.parseHandlerOpts...),
		Format:   NewFormatCourseHandler(service, logger, gates, cfg.formatHandlerOpts...),
		Validate: NewValidateDirectoryHandler(service, logger, cfg.validateHandlerOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Parse, set.Format, set.Validate} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// RegisterValidationCron runs the validate handler on the registrar's
// schedule with a background context.
func RegisterValidationCron(reg CronRegistrar, handler *ValidateDirectoryHandler, cfg command.HandlerConfig, msg ValidateDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
