package commands

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const defaultHandlerTimeout = 30 * time.Second

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler wraps command execution with the shared course concerns: context
// deadlines, structured logging, error tagging and telemetry.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	telemetry Telemetry[T]
}

// NewHandler creates a handler that satisfies go-command's Commander interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: defaultHandlerTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute. Messages are validated
// before the context is touched so invalid input never reaches the wrapped
// function.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	run := failureFor(msg)
	if err := command.ValidateMessage(msg); err != nil {
		return run.invalid(err)
	}

	ctx = ensureContext(ctx)
	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return run.interrupted(err)
	}

	fields := h.logFields(msg, run)
	logger := logging.WithFields(h.logger, fields)
	logger.Debug("course.command.started")

	started := time.Now()
	err := h.exec(ctx, msg)
	status := TelemetryStatusSuccess
	switch {
	case err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()):
		status = statusFor(ctx.Err())
		err = run.interrupted(err)
	case err != nil:
		status = TelemetryStatusFailed
		err = run.failed(err)
	case ctx.Err() != nil:
		status = statusFor(ctx.Err())
		err = run.interrupted(ctx.Err())
	}

	telemetry := h.telemetry
	if telemetry == nil {
		telemetry = DefaultTelemetry[T](h.logger)
	}
	telemetry(ctx, msg, TelemetryInfo{
		Command:   run.command,
		Operation: h.operation,
		Target:    run.target,
		Fields:    fields,
		Duration:  time.Since(started),
		Error:     err,
		Status:    status,
		Logger:    logger,
	})
	return err
}

// WithTimeout overrides the default execution timeout. Non-positive values
// disable the deadline.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		if timeout <= 0 {
			h.timeout = 0
			return
		}
		h.timeout = timeout
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		if logger == nil {
			h.logger = logging.NoOp()
			return
		}
		h.logger = logger
	}
}

// WithOperation sets a human-friendly operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields derives extra structured fields from each message.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithTelemetry replaces DefaultTelemetry with the supplied callback.
func WithTelemetry[T command.Message](telemetry Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = telemetry
	}
}

func (h *Handler[T]) logFields(msg T, run runFailure) map[string]any {
	fields := map[string]any{
		"command": run.command,
	}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if run.target != "" {
		fields["target"] = run.target
	}
	if h.fields != nil {
		for key, value := range h.fields(msg) {
			if _, reserved := fields[key]; reserved {
				continue
			}
			fields[key] = value
		}
	}
	return fields
}

func (h *Handler[T]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, h.timeout)
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
