package coursemd

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	moduleHeadingPattern = regexp.MustCompile(`^# Module (\d+):\s*(.+)$`)
	unitHeadingPattern   = regexp.MustCompile(`^## Unit (\d+):\s*(.+)$`)
	atxHeadingPattern    = regexp.MustCompile(`^(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)
)

// line is a single source line addressed by byte offsets. end excludes the
// line terminator; next is the offset of the following line.
type line struct {
	start, end, next int
	text             string
}

func splitLines(src string) []line {
	var out []line
	for pos := 0; pos < len(src); {
		end := strings.IndexByte(src[pos:], '\n')
		next := len(src)
		if end < 0 {
			end = len(src)
		} else {
			end += pos
			next = end + 1
		}
		out = append(out, line{
			start: pos,
			end:   end,
			next:  next,
			text:  strings.TrimSuffix(src[pos:end], "\r"),
		})
		pos = next
	}
	return out
}

// heading is a numbered module or unit heading found in pass one.
type heading struct {
	start, end int
	number     int
	title      string
}

// span is a region of the source assigned to one unit.
type span struct {
	module int
	unit   int
	title  string
	body   string
}

func scanNumbered(lines []line, pattern *regexp.Regexp) []heading {
	var found []heading
	for _, ln := range lines {
		m := pattern.FindStringSubmatch(ln.text)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		if title == "" {
			continue
		}
		found = append(found, heading{start: ln.start, end: ln.end, number: number, title: title})
	}
	return found
}

// moduleTitle records a module heading for callers that need the outline.
type moduleTitle struct {
	number int
	title  string
}

// scanStructure is pass one: it locates module headings, then unit headings
// within each module, and returns one span per unit. A module without unit
// headings becomes a single unit numbered 1 carrying the module title. The
// last unit of a module always runs to the end of the module, so a trailing
// "Tutor-Marked Assessment" section lands in that unit.
func scanStructure(src string) ([]span, []moduleTitle) {
	lines := splitLines(src)
	modules := scanNumbered(lines, moduleHeadingPattern)
	if len(modules) == 0 {
		return nil, nil
	}

	spans := make([]span, 0, len(modules))
	titles := make([]moduleTitle, 0, len(modules))
	for i, mod := range modules {
		end := len(src)
		if i+1 < len(modules) {
			end = modules[i+1].start
		}
		titles = append(titles, moduleTitle{number: mod.number, title: mod.title})

		bodyStart := min(mod.end, end)
		spans = append(spans, scanUnits(src[bodyStart:end], mod)...)
	}
	return spans, titles
}

func scanUnits(body string, mod heading) []span {
	units := scanNumbered(splitLines(body), unitHeadingPattern)
	if len(units) == 0 {
		return []span{{module: mod.number, unit: 1, title: mod.title, body: body}}
	}

	out := make([]span, 0, len(units))
	for i, u := range units {
		end := len(body)
		if i+1 < len(units) {
			end = units[i+1].start
		}
		out = append(out, span{
			module: mod.number,
			unit:   u.number,
			title:  u.title,
			body:   body[min(u.end, end):end],
		})
	}
	return out
}

// sectionBounds finds every ATX heading of level two or deeper whose text
// equals title and returns the byte ranges of those sections. A section runs
// until the next heading of the same or a higher level, or the end of src.
func sectionBounds(src, title string) [][2]int {
	lines := splitLines(src)
	var out [][2]int
	for i := 0; i < len(lines); i++ {
		level, text, ok := atxHeading(lines[i].text)
		if !ok || level < 2 || text != title {
			continue
		}
		end := len(src)
		j := i + 1
		for ; j < len(lines); j++ {
			if next, _, ok := atxHeading(lines[j].text); ok && next <= level {
				end = lines[j].start
				break
			}
		}
		out = append(out, [2]int{lines[i].start, end})
		i = j - 1
	}
	return out
}

func atxHeading(text string) (int, string, bool) {
	m := atxHeadingPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// cutRanges removes the given non-overlapping, ascending ranges from src.
func cutRanges(src string, ranges [][2]int) string {
	if len(ranges) == 0 {
		return src
	}
	var b strings.Builder
	b.Grow(len(src))
	pos := 0
	for _, r := range ranges {
		b.WriteString(src[pos:r[0]])
		pos = r[1]
	}
	b.WriteString(src[pos:])
	return b.String()
}
