package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// ParseFrontMatter extracts the optional course metadata block and returns the
// remaining Markdown body. Sources without front matter are returned whole.
func ParseFrontMatter(source []byte) (interfaces.CourseFrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.CourseFrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles a course document from the supplied path, raw
// content and modification time. Units are left empty; the service parses
// them so that parser options apply.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.CourseDocument, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.CourseDocument{
		FilePath:     path,
		Slug:         ResolveSlug(fm.Slug, fm.Title, path),
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title"`
	Slug    string         `yaml:"slug"`
	Summary string         `yaml:"summary"`
	Author  string         `yaml:"author"`
	Tags    []string       `yaml:"tags"`
	Draft   bool           `yaml:"draft"`
	Modules map[int]string `yaml:"modules"`
	Custom  map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.CourseFrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+7)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if len(env.Modules) > 0 {
		raw["modules"] = cloneModules(env.Modules)
	}
	raw["draft"] = env.Draft

	return interfaces.CourseFrontMatter{
		Title:   env.Title,
		Slug:    env.Slug,
		Summary: env.Summary,
		Author:  env.Author,
		Tags:    append([]string(nil), env.Tags...),
		Draft:   env.Draft,
		Modules: cloneModules(env.Modules),
		Custom:  cloneMap(env.Custom),
		Raw:     raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}

func cloneModules(input map[int]string) map[int]string {
	if len(input) == 0 {
		return nil
	}
	out := make(map[int]string, len(input))
	for number, title := range input {
		out[number] = title
	}
	return out
}
