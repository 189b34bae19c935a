package markdown

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-coursemd/internal/coursemd"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, false)

	doc, err := svc.Load(context.Background(), "intro.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.Slug != "intro-to-go" {
		t.Fatalf("expected slug intro-to-go, got %q", doc.Slug)
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
	if len(doc.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(doc.Units))
	}
	if doc.Units[0].SelfAssessment == nil || doc.Units[0].SelfAssessment.Questions[0].Type != interfaces.QuestionMultipleChoice {
		t.Fatalf("expected multiple-choice self assessment, got %#v", doc.Units[0].SelfAssessment)
	}
	if doc.ModuleTitles[1] != "Getting Started" {
		t.Fatalf("expected authored module title to win, got %q", doc.ModuleTitles[1])
	}
	if doc.ModuleTitles[3] != "Wrap Up" {
		t.Fatalf("expected authored module title, got %q", doc.ModuleTitles[3])
	}
}

func TestServiceLoadDirectory(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	var paths []string
	for _, doc := range docs {
		paths = append(paths, doc.FilePath)
		if len(doc.Checksum) == 0 {
			t.Fatalf("expected checksum set for %s", doc.FilePath)
		}
	}
	if strings.Join(paths, ",") != "advanced/concurrency.md,intro.md,notes.md" {
		t.Fatalf("unexpected paths %v", paths)
	}

	notes := docs[2]
	if len(notes.Units) != 1 || notes.Units[0].Title != coursemd.FallbackTitle {
		t.Fatalf("expected unstructured notes to fall back, got %#v", notes.Units)
	}
}

func TestServiceLoadDirectoryNonRecursive(t *testing.T) {
	svc := newTestService(t, false)

	docs, err := svc.LoadDirectory(context.Background(), ".")
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 top-level documents, got %d", len(docs))
	}
}

func TestServiceParseStripsFrontMatter(t *testing.T) {
	svc := newTestService(t, false)

	units, err := svc.Parse(context.Background(), []byte("---\ntitle: X\n---\n# Module 2: Two\n\n## Unit 4: Four\n\nBody\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(units) != 1 || units[0].Module != 2 || units[0].Unit != 4 || units[0].Content != "Body" {
		t.Fatalf("unexpected units %#v", units)
	}
}

func TestServiceParseHonoursCancelledContext(t *testing.T) {
	svc := newTestService(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Parse(ctx, []byte("# Module 1: A")); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestServiceFormatRoundTrip(t *testing.T) {
	svc := newTestService(t, false)
	ctx := context.Background()

	doc, err := svc.Load(ctx, "intro.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	out, err := svc.Format(ctx, doc)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("---\n")) {
		t.Fatalf("expected front matter to be written, got %q", out)
	}

	fm, body, err := ParseFrontMatter(out)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Title != "Intro to Go" || fm.Custom["level"] != "beginner" {
		t.Fatalf("front matter lost in format: %#v", fm)
	}
	if !strings.Contains(string(body), "# Module 3: Wrap Up") {
		t.Fatalf("expected module heading in output, got %q", body)
	}

	units, err := svc.Parse(ctx, out)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(units) != len(doc.Units) {
		t.Fatalf("expected %d units after format, got %d", len(doc.Units), len(units))
	}
	for i := range units {
		if units[i].Title != doc.Units[i].Title || units[i].Content != doc.Units[i].Content {
			t.Fatalf("unit %d changed across format: %#v vs %#v", i, units[i], doc.Units[i])
		}
	}
}

func TestServiceFormatWithoutFrontMatter(t *testing.T) {
	svc := newTestService(t, false)
	doc := &interfaces.CourseDocument{
		Units: []interfaces.Unit{{Module: 1, Unit: 1, Title: "Only", Content: "Text"}},
	}
	out, err := svc.Format(context.Background(), doc)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if string(out) != "# Module 1: Module 1\n\n## Unit 1: Only\n\nText\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := svc.Format(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
}

func TestServiceRenderUnitMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	svc, err := NewService(Config{BasePath: dir, Render: interfaces.RenderOptions{HardWraps: true}}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	segments, err := svc.RenderUnit(context.Background(), interfaces.Unit{Content: "one\ntwo"}, interfaces.RenderOptions{})
	if err != nil {
		t.Fatalf("RenderUnit: %v", err)
	}
	if len(segments) != 1 || !strings.Contains(segments[0].HTML, "one<br>") {
		t.Fatalf("expected configured hard wraps, got %#v", segments)
	}
}

func TestServiceUnitRefs(t *testing.T) {
	svc := newTestService(t, false)
	doc, err := svc.Load(context.Background(), "intro.md")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	refs := svc.UnitRefs(doc)
	again := svc.UnitRefs(doc)
	if len(refs) != 2 || refs[0].Key != "1-1" || refs[1].Key != "3-1" {
		t.Fatalf("unexpected refs %#v", refs)
	}
	if refs[0].ID != again[0].ID || refs[0].ID == refs[1].ID {
		t.Fatalf("expected stable, distinct ids: %#v", refs)
	}
	if svc.UnitRefs(nil) != nil {
		t.Fatalf("expected nil refs for nil document")
	}
}

func TestNewServiceRejectsMissingBasePath(t *testing.T) {
	if _, err := NewService(Config{BasePath: filepath.Join(t.TempDir(), "missing")}, nil); err == nil {
		t.Fatalf("expected error for missing base path")
	}
}

func newTestService(t *testing.T, recursive bool) *Service {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "intro.md"), readFixture(t, "testdata/course.md"))
	writeFile(t, filepath.Join(dir, "notes.md"), []byte("Loose notes without headings.\n"))
	writeFile(t, filepath.Join(dir, "advanced", "concurrency.md"), []byte("# Module 1: Concurrency\n\n## Unit 1: Goroutines\n\nGo statements.\n"))
	writeFile(t, filepath.Join(dir, "README.txt"), []byte("not a course"))

	svc, err := NewService(Config{BasePath: dir, Recursive: recursive}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
