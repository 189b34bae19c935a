package di_test

import (
	"context"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

type recordingProvider struct {
	entries []recordedEntry
}

type recordedEntry struct {
	level  string
	msg    string
	fields map[string]any
}

func newRecordingProvider() *recordingProvider {
	return &recordingProvider{entries: []recordedEntry{}}
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	return &recordingLogger{
		provider: p,
		fields: map[string]any{
			"logger": name,
		},
	}
}

func (p *recordingProvider) find(msg string) *recordedEntry {
	for i := range p.entries {
		if p.entries[i].msg == msg {
			return &p.entries[i]
		}
	}
	return nil
}

type recordingLogger struct {
	provider *recordingProvider
	fields   map[string]any
}

var _ interfaces.Logger = (*recordingLogger)(nil)

func (l *recordingLogger) Trace(msg string, args ...any) { l.log("TRACE", msg, args...) }
func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
func (l *recordingLogger) Fatal(msg string, args ...any) { l.log("FATAL", msg, args...) }

func (l *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := cloneFields(l.fields)
	for key, value := range fields {
		merged[key] = value
	}
	return &recordingLogger{provider: l.provider, fields: merged}
}

func (l *recordingLogger) WithContext(context.Context) interfaces.Logger {
	return &recordingLogger{provider: l.provider, fields: cloneFields(l.fields)}
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	fields := cloneFields(l.fields)
	for i := 0; i+1 < len(args); i += 2 {
		key, _ := args[i].(string)
		if key == "" {
			continue
		}
		fields[key] = args[i+1]
	}
	l.provider.entries = append(l.provider.entries, recordedEntry{
		level:  level,
		msg:    msg,
		fields: fields,
	})
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for key, value := range fields {
		out[key] = value
	}
	return out
}
