package coursemd

import (
	"context"
	"sync"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (r *recordingLogger) record(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, msg)
}

func (r *recordingLogger) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.entries...)
}

func (r *recordingLogger) Trace(msg string, _ ...any) { r.record(msg) }
func (r *recordingLogger) Debug(msg string, _ ...any) { r.record(msg) }
func (r *recordingLogger) Info(msg string, _ ...any)  { r.record(msg) }
func (r *recordingLogger) Warn(msg string, _ ...any)  { r.record(msg) }
func (r *recordingLogger) Error(msg string, _ ...any) { r.record(msg) }
func (r *recordingLogger) Fatal(msg string, _ ...any) { r.record(msg) }

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }
