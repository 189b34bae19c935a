// Package fixtures provides recording registries for command wiring tests.
package fixtures

import (
	"fmt"

	command "github.com/goliatone/go-command"
)

// RecordingRegistry captures registered command handlers in order.
type RecordingRegistry struct {
	Handlers []any
	Err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records the handler, or returns Err when set.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CronRegistration captures a single cron wiring invocation.
type CronRegistration struct {
	Config  command.HandlerConfig
	Handler func() error
}

// CronRecorder records calls to a cron registrar function.
type CronRecorder struct {
	Registrations []CronRegistration
	err           error
}

// NewCronRecorder constructs a cron recorder.
func NewCronRecorder() *CronRecorder {
	return &CronRecorder{
		Registrations: make([]CronRegistration, 0),
	}
}

// Fail configures the recorder to return the supplied error on registration.
func (c *CronRecorder) Fail(err error) {
	c.err = err
}

// Registrar returns a registrar function that records invocations. Handlers
// must be func() error.
func (c *CronRecorder) Registrar() func(command.HandlerConfig, any) error {
	return func(cfg command.HandlerConfig, handler any) error {
		if c.err != nil {
			return c.err
		}
		fn, ok := handler.(func() error)
		if !ok {
			return fmt.Errorf("fixtures: unsupported cron handler %T", handler)
		}
		c.Registrations = append(c.Registrations, CronRegistration{
			Config:  cfg,
			Handler: fn,
		})
		return nil
	}
}
