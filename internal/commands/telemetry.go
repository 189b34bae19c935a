package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus is the outcome of one course command run.
type TelemetryStatus string

const (
	TelemetryStatusSuccess   TelemetryStatus = "success"
	TelemetryStatusFailed    TelemetryStatus = "failed"
	TelemetryStatusCancelled TelemetryStatus = "cancelled"
	TelemetryStatusTimedOut  TelemetryStatus = "timed_out"
)

// Interrupted reports whether the run stopped because its context ended.
func (s TelemetryStatus) Interrupted() bool {
	return s == TelemetryStatusCancelled || s == TelemetryStatusTimedOut
}

// TelemetryInfo is handed to telemetry callbacks after every run.
type TelemetryInfo struct {
	Command   string
	Operation string
	// Target is the course file or directory the message named, if any.
	Target   string
	Fields   map[string]any
	Duration time.Duration
	Error    error
	Status   TelemetryStatus
	Logger   interfaces.Logger
}

// Telemetry is called once per run with the outcome.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs each outcome under a course.command.* key.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{"duration_ms", info.Duration.Milliseconds(), "status", string(info.Status)}
		switch {
		case info.Status == TelemetryStatusSuccess:
			entry.Info("course.command.completed", args...)
		case info.Status.Interrupted():
			entry.Warn("course.command.interrupted", append(args, "error", info.Error)...)
		default:
			entry.Error("course.command.failed", append(args, "error", info.Error)...)
		}
	}
}
