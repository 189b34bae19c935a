package coursemd

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// FallbackTitle names the synthetic unit returned for unstructured documents.
const FallbackTitle = "Course Content"

// Parser turns course markdown into units. The zero value is not usable; build
// one with NewParser. A Parser holds no per-call state and is safe for
// concurrent use.
type Parser struct {
	logger interfaces.Logger
}

var _ interfaces.CourseParser = (*Parser)(nil)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger installs a diagnostic sink. Nil keeps the no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser builds a parser with the supplied options applied.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// ModuleHeading is a module number and title as authored.
type ModuleHeading struct {
	Number int
	Title  string
}

// Outline is the structured result of a parse: the units plus the module
// headings they were found under. Modules is empty for fallback parses.
type Outline struct {
	Modules  []ModuleHeading
	Units    []interfaces.Unit
	Fallback bool
}

// ModuleTitles maps module numbers to their authored titles. When a number
// repeats, the first heading wins.
func (o Outline) ModuleTitles() map[int]string {
	titles := make(map[int]string, len(o.Modules))
	for _, mod := range o.Modules {
		if _, ok := titles[mod.Number]; !ok {
			titles[mod.Number] = mod.Title
		}
	}
	return titles
}

// Parse returns the units found in markdown. It never panics: empty or
// whitespace-only input yields an empty slice and anything unexpected yields
// a single unit holding the raw input.
func (p *Parser) Parse(markdown string) []interfaces.Unit {
	return p.ParseOutline(markdown).Units
}

// ParseOutline is Parse plus the module headings, which the serializer and
// the outline views use for module titles.
func (p *Parser) ParseOutline(markdown string) (out Outline) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("parser.recovered", "panic", fmt.Sprint(r))
			out = Outline{
				Units:    []interfaces.Unit{{Module: 1, Unit: 1, Title: FallbackTitle, Content: markdown}},
				Fallback: true,
			}
		}
	}()

	if strings.TrimSpace(markdown) == "" {
		return Outline{Units: []interfaces.Unit{}}
	}

	spans, modules := scanStructure(markdown)
	if len(spans) == 0 {
		out.Fallback = true
		spans = []span{{module: 1, unit: 1, title: FallbackTitle, body: markdown}}
	}

	out.Units = make([]interfaces.Unit, 0, len(spans))
	for _, s := range spans {
		ex := p.extractContent(s.body)
		out.Units = append(out.Units, interfaces.Unit{
			Module:         s.module,
			Unit:           s.unit,
			Title:          s.title,
			Content:        ex.content,
			SelfAssessment: ex.self,
			TutorMarked:    ex.tutor,
		})
	}
	for _, mod := range modules {
		out.Modules = append(out.Modules, ModuleHeading{Number: mod.number, Title: mod.title})
	}

	p.logger.Debug("parser.units.parsed", "units", len(out.Units), "modules", len(out.Modules), "fallback", out.Fallback)
	return out
}

var defaultParser = NewParser()

// Parse runs the default parser.
func Parse(markdown string) []interfaces.Unit {
	return defaultParser.Parse(markdown)
}
