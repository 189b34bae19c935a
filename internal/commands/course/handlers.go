package coursecmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-coursemd/internal/commands"
	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/internal/validation"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

var (
	_ commands.CourseTarget = ParseCourseCommand{}
	_ commands.CourseTarget = FormatCourseCommand{}
	_ commands.CourseTarget = ValidateDirectoryCommand{}
)

const (
	parseOperation    = "course.parse"
	formatOperation   = "course.format"
	validateOperation = "course.validate_directory"

	unitsInvalidCode = "COURSEMD_UNITS_INVALID"
)

// ErrCourseUnitsInvalid is returned when parsed units fail schema validation.
var ErrCourseUnitsInvalid = errors.New("course command: units failed validation")

var (
	_ command.Commander[ParseCourseCommand]       = (*ParseCourseHandler)(nil)
	_ command.Commander[FormatCourseCommand]      = (*FormatCourseHandler)(nil)
	_ command.Commander[ValidateDirectoryCommand] = (*ValidateDirectoryHandler)(nil)
)

// DocumentReport summarises one validated course document.
type DocumentReport struct {
	Path   string
	Units  int
	Issues []validation.ValidationIssue
}

// Valid reports whether the document produced no issues.
func (r DocumentReport) Valid() bool { return len(r.Issues) == 0 }

// ParseCourseHandler loads and parses course files through the shared handler foundation.
type ParseCourseHandler struct {
	inner *commands.Handler[ParseCourseCommand]
}

// NewParseCourseHandler creates a handler bound to the supplied course service.
func NewParseCourseHandler(service interfaces.CourseService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[ParseCourseCommand]) *ParseCourseHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ParseCourseCommand) error {
		doc, err := service.Load(ctx, msg.Path)
		if err != nil {
			return err
		}
		if gates.validationEnabled() {
			if err := validateUnits(doc.Units); err != nil {
				return err
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"path":  doc.FilePath,
			"slug":  doc.Slug,
			"units": len(doc.Units),
		}).Info("course.command.parse.completed")
		if msg.OnParsed != nil {
			msg.OnParsed(doc)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ParseCourseCommand]{
		commands.WithLogger[ParseCourseCommand](baseLogger),
		commands.WithOperation[ParseCourseCommand](parseOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[ParseCourseCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ParseCourseHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ParseCourseCommand].
func (h *ParseCourseHandler) Execute(ctx context.Context, msg ParseCourseCommand) error {
	return h.inner.Execute(ctx, msg)
}

// FormatCourseHandler rewrites course files into the canonical layout.
type FormatCourseHandler struct {
	inner *commands.Handler[FormatCourseCommand]
}

// NewFormatCourseHandler creates a handler bound to the supplied course service.
func NewFormatCourseHandler(service interfaces.CourseService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[FormatCourseCommand]) *FormatCourseHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg FormatCourseCommand) error {
		doc, err := service.Load(ctx, msg.Path)
		if err != nil {
			return err
		}
		if gates.validationEnabled() {
			if err := validateUnits(doc.Units); err != nil {
				return err
			}
		}

		formatted, err := service.Format(ctx, doc)
		if err != nil {
			return err
		}

		if output := strings.TrimSpace(msg.Output); output != "" {
			if err := os.WriteFile(output, formatted, 0o644); err != nil {
				return fmt.Errorf("write formatted course %s: %w", output, err)
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"path":  doc.FilePath,
			"bytes": len(formatted),
		}).Info("course.command.format.completed")
		if msg.OnFormatted != nil {
			msg.OnFormatted(formatted)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[FormatCourseCommand]{
		commands.WithLogger[FormatCourseCommand](baseLogger),
		commands.WithOperation[FormatCourseCommand](formatOperation),
		commands.WithMessageFields(func(msg FormatCourseCommand) map[string]any {
			fields := map[string]any{}
			if msg.Output != "" {
				fields["output"] = msg.Output
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[FormatCourseCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &FormatCourseHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[FormatCourseCommand].
func (h *FormatCourseHandler) Execute(ctx context.Context, msg FormatCourseCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ValidateDirectoryHandler checks every course file in a directory. It always
// validates, regardless of the feature gate, because validation is its job.
type ValidateDirectoryHandler struct {
	inner *commands.Handler[ValidateDirectoryCommand]
}

// NewValidateDirectoryHandler creates a handler bound to the supplied course service.
func NewValidateDirectoryHandler(service interfaces.CourseService, logger interfaces.Logger, opts ...commands.HandlerOption[ValidateDirectoryCommand]) *ValidateDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateDirectoryCommand) error {
		docs, err := service.LoadDirectory(ctx, msg.Directory)
		if err != nil {
			return err
		}

		invalid := 0
		for _, doc := range docs {
			report := DocumentReport{Path: doc.FilePath, Units: len(doc.Units)}
			if err := validation.ValidateUnits(doc.Units); err != nil {
				if errors.Is(err, validation.ErrSchemaInvalid) {
					return err
				}
				report.Issues = validation.Issues(err)
				invalid++
			}
			if msg.OnReport != nil {
				msg.OnReport(report)
			}
		}

		logging.WithFields(baseLogger, map[string]any{
			"documents": len(docs),
			"invalid":   invalid,
		}).Info("course.command.validate_directory.completed")

		if invalid > 0 && msg.FailOnIssues {
			return goerrors.Wrap(
				fmt.Errorf("%w: %d of %d documents", ErrCourseUnitsInvalid, invalid, len(docs)),
				goerrors.CategoryValidation,
				"course documents failed validation",
			).WithTextCode(unitsInvalidCode)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ValidateDirectoryCommand]{
		commands.WithLogger[ValidateDirectoryCommand](baseLogger),
		commands.WithOperation[ValidateDirectoryCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateDirectoryCommand) map[string]any {
			fields := map[string]any{}
			if msg.FailOnIssues {
				fields["fail_on_issues"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateDirectoryCommand].
func (h *ValidateDirectoryHandler) Execute(ctx context.Context, msg ValidateDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

func validateUnits(units []interfaces.Unit) error {
	err := validation.ValidateUnits(units)
	if err == nil {
		return nil
	}
	return goerrors.Wrap(
		fmt.Errorf("%w: %v", ErrCourseUnitsInvalid, err),
		goerrors.CategoryValidation,
		"parsed units failed validation",
	).WithTextCode(unitsInvalidCode)
}
