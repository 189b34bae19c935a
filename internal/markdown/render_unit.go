package markdown

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-coursemd/internal/coursemd"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// RenderUnit splits the unit's content on video placeholders, renders each
// text run to HTML and emits a video segment for every placeholder. Text runs
// are rendered independently, so markdown constructs do not span a video.
func RenderUnit(renderer interfaces.MarkdownRenderer, unit interfaces.Unit, opts interfaces.RenderOptions) ([]interfaces.RenderedSegment, error) {
	if renderer == nil {
		return nil, errors.New("markdown render unit: renderer is nil")
	}

	parts := coursemd.SplitVideoPlaceholders(unit.Content)
	segments := make([]interfaces.RenderedSegment, 0, len(parts))
	for _, part := range parts {
		if part.IsVideo() {
			segments = append(segments, interfaces.RenderedSegment{
				Kind:     interfaces.SegmentVideo,
				VideoID:  part.VideoID,
				EmbedURL: coursemd.EmbedURL(part.VideoID),
			})
			continue
		}
		html, err := renderer.RenderWithOptions([]byte(part.Text), opts)
		if err != nil {
			return nil, fmt.Errorf("markdown render unit %d-%d: %w", unit.Module, unit.Unit, err)
		}
		segments = append(segments, interfaces.RenderedSegment{
			Kind: interfaces.SegmentHTML,
			HTML: string(html),
		})
	}
	return segments, nil
}
