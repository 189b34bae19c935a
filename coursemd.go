// Package coursemd parses and serializes the course markdown dialect: a
// document of "# Module N:" and "## Unit N:" headings whose units carry
// optional self-assessment and tutor-marked question blocks.
package coursemd

import (
	coursecmd "github.com/goliatone/go-coursemd/internal/commands/course"
	"github.com/goliatone/go-coursemd/internal/coursemd"
	"github.com/goliatone/go-coursemd/internal/di"
	"github.com/goliatone/go-coursemd/internal/progress"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

type (
	Unit           = interfaces.Unit
	Question       = interfaces.Question
	QuestionSet    = interfaces.QuestionSet
	QuestionType   = interfaces.QuestionType
	AssessmentKind = interfaces.AssessmentKind
	ModuleGroup    = interfaces.ModuleGroup
	CourseDocument = interfaces.CourseDocument
)

// CourseService exports the file-backed course workflows.
type CourseService = interfaces.CourseService

// ProgressSnapshot exports the per-learner completion state.
type ProgressSnapshot = progress.Snapshot

// ProgressSummary exports the derived course progress view.
type ProgressSummary = progress.Summary

// CommandHandlers exports the course command handler set.
type CommandHandlers = *coursecmd.HandlerSet

// Option customises module construction.
type Option = di.Option

var (
	WithLoggerProvider  = di.WithLoggerProvider
	WithRenderer        = di.WithRenderer
	WithCommandRegistry = di.WithCommandRegistry
)

// Module is the top level course runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a course module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Parser returns the module's course parser.
func (m *Module) Parser() interfaces.CourseParser {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Parser()
}

// Courses returns the filesystem-backed course service.
func (m *Module) Courses() CourseService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CourseService()
}

// UnitRefs returns stable identifiers for every unit of doc.
func (m *Module) UnitRefs(doc *CourseDocument) []interfaces.UnitRef {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CourseService().UnitRefs(doc)
}

// Progress returns the unit completion tracker.
func (m *Module) Progress() *progress.Tracker {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ProgressTracker()
}

// Commands returns the course command handlers.
func (m *Module) Commands() CommandHandlers {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CommandHandlers()
}

// FallbackTitle names the single unit produced for unstructured documents.
const FallbackTitle = coursemd.FallbackTitle

// Parse splits a course document into units. It never fails: unstructured
// input comes back as a single "Course Content" unit and blank input as an
// empty slice.
func Parse(markdown string) []Unit {
	return coursemd.Parse(markdown)
}

// Serialize renders units back into the authoring dialect.
func Serialize(units []Unit) string {
	return coursemd.Serialize(units)
}

// SerializeWithTitles renders units using titles for the module headings.
func SerializeWithTitles(units []Unit, titles map[int]string) string {
	return coursemd.NewSerializer(coursemd.WithModuleTitles(titles)).Serialize(units)
}

// GroupModules groups units by module number in ascending order.
func GroupModules(units []Unit, titles map[int]string) []ModuleGroup {
	return coursemd.GroupModules(units, titles)
}

// NewProgressSnapshot returns an empty completion snapshot.
func NewProgressSnapshot() ProgressSnapshot {
	return progress.NewSnapshot()
}

// SummarizeProgress derives per-module and whole-course progress.
func SummarizeProgress(units []Unit, titles map[int]string, snap ProgressSnapshot) ProgressSummary {
	return progress.Summarize(units, titles, snap)
}
