package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-coursemd/internal/coursemd"
	"github.com/goliatone/go-coursemd/internal/identity"
	"github.com/goliatone/go-coursemd/internal/logging"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// Config controls how the course service discovers, parses and renders files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Render    interfaces.RenderOptions
}

// Service implements interfaces.CourseService for filesystem-backed courses.
type Service struct {
	cfg      Config
	renderer interfaces.MarkdownRenderer
	parser   *coursemd.Parser
	loader   *Loader
	logger   interfaces.Logger
}

var _ interfaces.CourseService = (*Service)(nil)

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithLogger sets the service logger. Nil keeps the no-op logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParser replaces the course parser, typically to share its logger.
func WithParser(parser *coursemd.Parser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// NewService constructs a course service over the configured base path. When
// renderer is nil, a goldmark renderer with the configured defaults is used.
func NewService(cfg Config, renderer interfaces.MarkdownRenderer, opts ...ServiceOption) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if renderer == nil {
		renderer = NewGoldmarkRenderer(cfg.Render)
	}

	s := &Service{
		cfg:      cfg,
		renderer: renderer,
		parser:   coursemd.NewParser(),
		loader: NewLoader(filesystem, LoaderConfig{
			BasePath:  cfg.BasePath,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Load reads and parses a single course document relative to the base path.
func (s *Service) Load(ctx context.Context, path string) (*interfaces.CourseDocument, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path))
	if err != nil {
		return nil, err
	}
	s.parseDocument(result.Document)
	return result.Document, nil
}

// LoadDirectory reads and parses every course document within dir.
func (s *Service) LoadDirectory(ctx context.Context, dir string) ([]*interfaces.CourseDocument, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), LoadParams{})
	if err != nil {
		return nil, err
	}

	docs := make([]*interfaces.CourseDocument, 0, len(results))
	for _, result := range results {
		s.parseDocument(result.Document)
		docs = append(docs, result.Document)
	}
	s.logger.Info("markdown.directory.loaded", "dir", dir, "documents", len(docs))
	return docs, nil
}

// Parse strips any front matter from markdown and returns its units.
func (s *Service) Parse(ctx context.Context, markdown []byte) ([]interfaces.Unit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, body, err := ParseFrontMatter(markdown)
	if err != nil {
		return nil, err
	}
	return s.parser.Parse(string(body)), nil
}

// RenderUnit renders the unit's content, merging opts over the configured defaults.
func (s *Service) RenderUnit(ctx context.Context, unit interfaces.Unit, opts interfaces.RenderOptions) ([]interfaces.RenderedSegment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return RenderUnit(s.renderer, unit, mergeRenderOptions(s.cfg.Render, opts))
}

// Format serialises the document's units back into the authoring dialect,
// preceded by its front matter when any is set.
func (s *Service) Format(ctx context.Context, doc *interfaces.CourseDocument) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeFrontMatter(&buf, doc.FrontMatter); err != nil {
		return nil, fmt.Errorf("markdown format %s: %w", doc.FilePath, err)
	}
	serializer := coursemd.NewSerializer(coursemd.WithModuleTitles(doc.ModuleTitles))
	buf.WriteString(serializer.Serialize(doc.Units))

	logging.WithCourseContext(s.logger, doc.FilePath, doc.Slug, "format").
		Debug("markdown.document.formatted", "units", len(doc.Units))
	return buf.Bytes(), nil
}

// UnitRefs derives stable identifiers for every unit of doc, keyed on the
// course slug and the unit's authored position.
func (s *Service) UnitRefs(doc *interfaces.CourseDocument) []interfaces.UnitRef {
	if doc == nil {
		return nil
	}
	courseID := identity.CourseUUID(doc.Slug)
	refs := make([]interfaces.UnitRef, 0, len(doc.Units))
	for _, unit := range doc.Units {
		refs = append(refs, interfaces.UnitRef{
			ID:     identity.UnitUUID(courseID, unit.Module, unit.Unit),
			Key:    fmt.Sprintf("%d-%d", unit.Module, unit.Unit),
			Module: unit.Module,
			Unit:   unit.Unit,
		})
	}
	return refs
}

func (s *Service) parseDocument(doc *interfaces.CourseDocument) {
	if doc == nil {
		return
	}
	outline := s.parser.ParseOutline(string(doc.Body))
	doc.Units = outline.Units
	doc.ModuleTitles = outline.ModuleTitles()
	for number, title := range doc.FrontMatter.Modules {
		if _, ok := doc.ModuleTitles[number]; !ok && strings.TrimSpace(title) != "" {
			doc.ModuleTitles[number] = strings.TrimSpace(title)
		}
	}

	logger := logging.WithCourseContext(s.logger, doc.FilePath, doc.Slug, "load")
	if outline.Fallback {
		logger.Warn("markdown.document.unstructured", "units", len(outline.Units))
		return
	}
	logger.Debug("markdown.document.parsed", "units", len(outline.Units), "modules", len(outline.Modules))
}

type frontMatterOut struct {
	Title   string         `yaml:"title,omitempty"`
	Slug    string         `yaml:"slug,omitempty"`
	Summary string         `yaml:"summary,omitempty"`
	Author  string         `yaml:"author,omitempty"`
	Tags    []string       `yaml:"tags,omitempty"`
	Draft   bool           `yaml:"draft,omitempty"`
	Modules map[int]string `yaml:"modules,omitempty"`
	Custom  map[string]any `yaml:",inline"`
}

func writeFrontMatter(buf *bytes.Buffer, fm interfaces.CourseFrontMatter) error {
	out := frontMatterOut{
		Title:   fm.Title,
		Slug:    fm.Slug,
		Summary: fm.Summary,
		Author:  fm.Author,
		Tags:    fm.Tags,
		Draft:   fm.Draft,
		Modules: fm.Modules,
		Custom:  fm.Custom,
	}
	if out.Title == "" && out.Slug == "" && out.Summary == "" && out.Author == "" &&
		len(out.Tags) == 0 && !out.Draft && len(out.Modules) == 0 && len(out.Custom) == 0 {
		return nil
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	buf.WriteString("---\n")
	buf.Write(data)
	buf.WriteString("---\n\n")
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeRenderOptions(base, override interfaces.RenderOptions) interfaces.RenderOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
