package logging

import (
	"context"
	"maps"
	"testing"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := map[string]any{}
	maps.Copy(copied, fields)
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "coursemd.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, parserModule)

	if len(provider.requested) != 1 || provider.requested[0] != parserModule {
		t.Fatalf("expected module %s, got %v", parserModule, provider.requested)
	}
	if len(rec.fields) != 1 {
		t.Fatalf("expected module fields to be applied once, got %d", len(rec.fields))
	}
	if got := rec.fields[0]["module"]; got != parserModule {
		t.Fatalf("expected module field %s, got %v", parserModule, got)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if len(provider.requested) != 1 || provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamedLoggersRequestTheirModules(t *testing.T) {
	cases := []struct {
		name   string
		build  func(interfaces.LoggerProvider) interfaces.Logger
		module string
	}{
		{"parser", ParserLogger, parserModule},
		{"markdown", MarkdownLogger, markdownModule},
		{"progress", ProgressLogger, progressModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.build(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.module {
				t.Fatalf("expected %s module request, got %v", tc.module, provider.requested)
			}
		})
	}
}

func TestWithCourseContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithCourseContext(rec, " courses/intro.md ", "", "parse")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldCoursePath] != "courses/intro.md" {
		t.Fatalf("expected trimmed path, got %v", fields[fieldCoursePath])
	}
	if _, ok := fields[fieldCourseSlug]; ok {
		t.Fatalf("expected empty slug to be skipped, got %v", fields)
	}
	if fields[fieldAction] != "parse" {
		t.Fatalf("expected action field, got %v", fields[fieldAction])
	}
}

func TestContextFieldsMergeAndCopy(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"a": 1})
	ctx = ContextWithFields(ctx, map[string]any{"b": 2})

	fields := ContextFields(ctx)
	if fields["a"] != 1 || fields["b"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}
	fields["a"] = 99
	if ContextFields(ctx)["a"] != 1 {
		t.Fatal("expected ContextFields to return a copy")
	}
}
