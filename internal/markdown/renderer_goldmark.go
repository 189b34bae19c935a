package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// GoldmarkRenderer implements interfaces.MarkdownRenderer using the goldmark
// engine. It holds no mutable state and can be shared across goroutines.
type GoldmarkRenderer struct {
	defaultOptions interfaces.RenderOptions
}

var _ interfaces.MarkdownRenderer = (*GoldmarkRenderer)(nil)

// NewGoldmarkRenderer constructs a renderer with GFM, linkify and task list
// extensions unless defaults names others.
func NewGoldmarkRenderer(defaults interfaces.RenderOptions) *GoldmarkRenderer {
	return &GoldmarkRenderer{
		defaultOptions: defaults,
	}
}

// Render converts Markdown into HTML using the renderer's defaults.
func (r *GoldmarkRenderer) Render(markdown []byte) ([]byte, error) {
	return r.RenderWithOptions(markdown, r.defaultOptions)
}

// RenderWithOptions converts Markdown into HTML using the provided options.
func (r *GoldmarkRenderer) RenderWithOptions(markdown []byte, opts interfaces.RenderOptions) ([]byte, error) {
	engine := newGoldmarkEngine(opts)
	var buf bytes.Buffer
	if err := engine.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// newGoldmarkEngine maps render options onto goldmark. Unknown extension
// names are ignored.
func newGoldmarkEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	exts := collectExtensions(opts.Extensions)

	parserOptions := []parser.Option{
		parser.WithAutoHeadingID(),
	}

	rendererOptions := []renderer.Option{}

	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	// SafeMode and Sanitize both suppress raw HTML passthrough.
	if !opts.SafeMode && !opts.Sanitize {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parserOptions...),
	}

	if len(rendererOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(rendererOptions...))
	}

	if len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}

	return goldmark.New(engineOptions...)
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
		}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}

		if _, ok := seen[key]; ok {
			continue
		}

		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}

		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}

	return extenders
}
