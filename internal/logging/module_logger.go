package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

const (
	rootModule     = "coursemd"
	parserModule   = "coursemd.parser"
	markdownModule = "coursemd.markdown"
	progressModule = "coursemd.progress"
)

const (
	fieldCoursePath = "course_path"
	fieldCourseSlug = "course_slug"
	fieldAction     = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ParserLogger returns the logger namespace reserved for the course parser.
func ParserLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, parserModule)
}

// MarkdownLogger returns the logger namespace reserved for course file workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// ProgressLogger returns the logger namespace reserved for progress summaries.
func ProgressLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, progressModule)
}

// WithCourseContext enriches the logger with the course file path, slug and
// the action being performed. Empty values are ignored.
func WithCourseContext(logger interfaces.Logger, path, slug, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldCoursePath] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldCourseSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
