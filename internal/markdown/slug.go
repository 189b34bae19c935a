package markdown

import (
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
)

// ResolveSlug picks the course slug: an explicit front matter slug when it
// normalises cleanly, then the title, then the file name without extension.
func ResolveSlug(explicit, title, path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, candidate := range []string{explicit, title, base} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		if slug.IsValid(candidate) {
			return candidate
		}
		normalized, err := slug.Normalize(candidate)
		if err == nil && normalized != "" {
			return normalized
		}
	}
	return ""
}
