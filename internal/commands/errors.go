package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to course command failures.
const (
	TextCodeMessageInvalid = "COURSEMD_MESSAGE_INVALID"
	TextCodeRunCancelled   = "COURSEMD_RUN_CANCELLED"
	TextCodeRunTimedOut    = "COURSEMD_RUN_TIMED_OUT"
	TextCodeRunInterrupted = "COURSEMD_RUN_INTERRUPTED"
	TextCodeRunFailed      = "COURSEMD_RUN_FAILED"
)

// CourseTarget is implemented by messages that act on a course file or
// directory. The target shows up in log fields and in failure messages.
type CourseTarget interface {
	CourseTarget() string
}

// TargetOf returns the course file or directory a message acts on, or an
// empty string when the message does not name one.
func TargetOf(msg any) string {
	if t, ok := msg.(CourseTarget); ok {
		return strings.TrimSpace(t.CourseTarget())
	}
	return ""
}

// runFailure describes one command run so every wrapped error names the
// message type and the course it was working on.
type runFailure struct {
	command string
	target  string
}

func failureFor[T command.Message](msg T) runFailure {
	return runFailure{
		command: command.GetMessageType(msg),
		target:  TargetOf(msg),
	}
}

func (f runFailure) describe(what string) string {
	if f.target == "" {
		return fmt.Sprintf("%s: %s", f.command, what)
	}
	return fmt.Sprintf("%s %q: %s", f.command, f.target, what)
}

// invalid tags a message that failed its own validation rules.
func (f runFailure) invalid(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, f.describe("message rejected")).
		WithTextCode(TextCodeMessageInvalid)
}

// interrupted tags a run that ended because its context finished first.
func (f runFailure) interrupted(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, f.describe("run cancelled")).
			WithTextCode(TextCodeRunCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, f.describe("run timed out")).
			WithTextCode(TextCodeRunTimedOut)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, f.describe("run interrupted")).
			WithTextCode(TextCodeRunInterrupted)
	}
}

// failed tags an error returned by the course operation itself. Errors the
// operation already categorised (schema issues, missing units) pass through.
func (f runFailure) failed(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, f.describe("run failed")).
		WithTextCode(TextCodeRunFailed)
}

// statusFor maps an interrupted context to its telemetry status.
func statusFor(err error) TelemetryStatus {
	if errors.Is(err, context.DeadlineExceeded) {
		return TelemetryStatusTimedOut
	}
	return TelemetryStatusCancelled
}
