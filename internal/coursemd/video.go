package coursemd

import (
	"regexp"
	"strings"
)

const (
	videoPlaceholderPrefix = "__VIDEO_EMBED_"
	videoPlaceholderSuffix = "__"
)

var (
	youtubeIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([A-Za-z0-9_-]+)`),
		regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]+)`),
	}
	placeholderPattern = regexp.MustCompile(`__VIDEO_EMBED_([A-Za-z0-9_-]+)__`)
)

// YouTubeID extracts the video identifier from a watch, short or embed URL.
func YouTubeID(url string) (string, bool) {
	for _, pattern := range youtubeIDPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// VideoPlaceholder returns the inline token that stands in for a video embed.
func VideoPlaceholder(id string) string {
	return videoPlaceholderPrefix + id + videoPlaceholderSuffix
}

// WatchURL is the canonical URL the serializer writes back for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// EmbedURL is the player URL renderers substitute for a placeholder.
func EmbedURL(id string) string {
	return "https://www.youtube.com/embed/" + id
}

// Segment is a piece of unit content: either markdown text or a video id.
type Segment struct {
	Text    string
	VideoID string
}

// IsVideo reports whether the segment stands for a video embed.
func (s Segment) IsVideo() bool {
	return s.VideoID != ""
}

// SplitVideoPlaceholders splits content on placeholder tokens so renderers can
// hand text segments to a markdown renderer and substitute players for the
// rest. Whitespace-only text segments are dropped.
func SplitVideoPlaceholders(content string) []Segment {
	var out []Segment
	pos := 0
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(content, -1) {
		if text := content[pos:m[0]]; strings.TrimSpace(text) != "" {
			out = append(out, Segment{Text: text})
		}
		out = append(out, Segment{VideoID: content[m[2]:m[3]]})
		pos = m[1]
	}
	if text := content[pos:]; strings.TrimSpace(text) != "" {
		out = append(out, Segment{Text: text})
	}
	return out
}
