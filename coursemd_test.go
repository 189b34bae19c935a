package coursemd_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-coursemd"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

const course = `# Module 1: Foundations

## Unit 1: Welcome

Hello there.

:::self-assessment
**Question 1:** Which language is this course about?
a) Go
b) Rust
:::

## Unit 2: Tooling

Install the toolchain.

:::tutor-marked
**Question 1:** Describe your editor setup.
[text-entry]
:::

# Module 2: Practice

## Unit 1: Exercises

Write a program.
`

func TestParseAndSerializeThroughFacade(t *testing.T) {
	units := coursemd.Parse(course)
	if len(units) != 3 {
		t.Fatalf("expected 3 units, got %d", len(units))
	}
	if units[0].SelfAssessment == nil || units[0].SelfAssessment.Questions[0].Type != interfaces.QuestionMultipleChoice {
		t.Fatalf("expected multiple-choice self-assessment, got %#v", units[0].SelfAssessment)
	}
	if units[1].TutorMarked == nil || units[1].TutorMarked.Questions[0].Type != interfaces.QuestionEssay {
		t.Fatalf("expected essay tutor question, got %#v", units[1].TutorMarked)
	}

	out := coursemd.SerializeWithTitles(units, map[int]string{1: "Foundations", 2: "Practice"})
	again := coursemd.Parse(out)
	if len(again) != len(units) {
		t.Fatalf("expected %d units after round trip, got %d", len(units), len(again))
	}
	for i := range units {
		if again[i].Title != units[i].Title || again[i].Content != units[i].Content {
			t.Fatalf("unit %d changed on round trip: %#v vs %#v", i, again[i], units[i])
		}
	}
}

func TestParseUnstructuredFallsBack(t *testing.T) {
	units := coursemd.Parse("just some notes")
	if len(units) != 1 || units[0].Title != coursemd.FallbackTitle {
		t.Fatalf("expected fallback unit, got %#v", units)
	}
	if len(coursemd.Parse("   \n")) != 0 {
		t.Fatal("expected no units for blank input")
	}
}

func TestGroupModulesAndProgressSummary(t *testing.T) {
	units := coursemd.Parse(course)
	groups := coursemd.GroupModules(units, map[int]string{1: "Foundations"})
	if len(groups) != 2 || groups[0].Title != "Foundations" || groups[1].Title != "Module 2" {
		t.Fatalf("unexpected groups: %#v", groups)
	}

	mod, err := coursemd.New(withDir(t, t.TempDir()))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	tracker := mod.Progress()
	snap := coursemd.NewProgressSnapshot()

	if _, err := tracker.MarkComplete(snap, units[0]); err == nil {
		t.Fatal("expected completion to require the self-assessment")
	}
	snap = tracker.RecordAssessment(snap, units[0], interfaces.AssessmentSelf)
	snap, err = tracker.MarkComplete(snap, units[0])
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	snap, err = tracker.MarkComplete(snap, units[2])
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	summary := coursemd.SummarizeProgress(units, nil, snap)
	if summary.CompletedUnits != 2 || summary.TotalUnits != 3 {
		t.Fatalf("expected 2/3 units complete, got %d/%d", summary.CompletedUnits, summary.TotalUnits)
	}
	if summary.Percent != 67 {
		t.Fatalf("expected 67 percent, got %d", summary.Percent)
	}
	if summary.CourseComplete {
		t.Fatal("course should not be complete")
	}
}

func TestModuleLoadsCourseFiles(t *testing.T) {
	dir := t.TempDir()
	source := "---\ntitle: Intro to Go\n---\n" + course
	if err := os.WriteFile(filepath.Join(dir, "intro.md"), []byte(source), 0o644); err != nil {
		t.Fatalf("write course: %v", err)
	}

	mod, err := coursemd.New(withDir(t, dir))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	doc, err := mod.Courses().Load(context.Background(), "intro.md")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.FrontMatter.Title != "Intro to Go" {
		t.Fatalf("expected front matter title, got %q", doc.FrontMatter.Title)
	}
	if doc.ModuleTitles[2] != "Practice" {
		t.Fatalf("expected module titles from headings, got %v", doc.ModuleTitles)
	}

	refs := mod.UnitRefs(doc)
	if len(refs) != 3 || refs[0].Key != "1-1" {
		t.Fatalf("unexpected unit refs: %#v", refs)
	}
	if again := mod.UnitRefs(doc); again[0].ID != refs[0].ID {
		t.Fatal("expected deterministic unit ids")
	}
	if mod.Parser() == nil || mod.Commands() == nil {
		t.Fatal("expected parser and commands wired")
	}
}

func withDir(t *testing.T, dir string) coursemd.Config {
	t.Helper()
	cfg := coursemd.DefaultConfig()
	cfg.Course.Dir = dir
	return cfg
}
