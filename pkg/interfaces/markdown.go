package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MarkdownRenderer converts unit content into HTML. The course parser never
// calls it; hosts invoke it when displaying parsed units.
type MarkdownRenderer interface {
	// Render converts Markdown into HTML using the renderer's default settings.
	Render(markdown []byte) ([]byte, error)
	// RenderWithOptions converts Markdown into HTML using the supplied overrides.
	RenderWithOptions(markdown []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions customises HTML rendering, keeping option names readable for
// configuration unmarshalling and CLI flags.
type RenderOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// CourseService exposes the file-backed course workflows: loading documents,
// parsing them into units, rendering units and formatting documents back into
// the authoring dialect.
type CourseService interface {
	Load(ctx context.Context, path string) (*CourseDocument, error)
	LoadDirectory(ctx context.Context, dir string) ([]*CourseDocument, error)
	Parse(ctx context.Context, markdown []byte) ([]Unit, error)
	RenderUnit(ctx context.Context, unit Unit, opts RenderOptions) ([]RenderedSegment, error)
	Format(ctx context.Context, doc *CourseDocument) ([]byte, error)
}

// CourseDocument represents a course file with its metadata and parsed units.
type CourseDocument struct {
	FilePath     string
	Slug         string
	FrontMatter  CourseFrontMatter
	Body         []byte
	Units        []Unit
	// ModuleTitles holds module heading titles, authored headings first and
	// front matter "modules" entries filling the gaps.
	ModuleTitles map[int]string
	LastModified time.Time
	// Checksum stores the SHA-256 digest of the original file so callers can
	// skip re-parsing unchanged documents.
	Checksum []byte
}

// CourseFrontMatter models the optional metadata block at the top of a course file.
type CourseFrontMatter struct {
	Title   string         `yaml:"title" json:"title"`
	Slug    string         `yaml:"slug" json:"slug"`
	Summary string         `yaml:"summary" json:"summary"`
	Author  string         `yaml:"author" json:"author"`
	Tags    []string       `yaml:"tags" json:"tags"`
	Draft   bool           `yaml:"draft" json:"draft"`
	Modules map[int]string `yaml:"modules" json:"modules,omitempty"`
	Custom  map[string]any `yaml:",inline" json:"custom"`
	Raw     map[string]any `yaml:"-" json:"raw"`
}

// UnitRef pairs a unit position with a stable identifier that persistence
// collaborators can key progress records on.
type UnitRef struct {
	ID     uuid.UUID `json:"id"`
	Key    string    `json:"key"`
	Module int       `json:"module"`
	Unit   int       `json:"unit"`
}

// SegmentKind labels a piece of rendered unit content.
type SegmentKind string

const (
	SegmentHTML  SegmentKind = "html"
	SegmentVideo SegmentKind = "video"
)

// RenderedSegment is either a block of rendered HTML or a video embed.
type RenderedSegment struct {
	Kind     SegmentKind `json:"kind"`
	HTML     string      `json:"html,omitempty"`
	VideoID  string      `json:"videoId,omitempty"`
	EmbedURL string      `json:"embedUrl,omitempty"`
}
