package coursemd

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

// Serializer writes units back into the authoring dialect. Output is stable:
// parsing it again yields the same modules, units, titles and question
// shapes.
type Serializer struct {
	moduleTitles map[int]string
}

var _ interfaces.CourseSerializer = (*Serializer)(nil)

// SerializerOption configures a Serializer.
type SerializerOption func(*Serializer)

// WithModuleTitles supplies module heading titles. Modules without an entry
// are titled "Module <n>".
func WithModuleTitles(titles map[int]string) SerializerOption {
	return func(s *Serializer) {
		for number, title := range titles {
			if title = strings.TrimSpace(title); title != "" {
				s.moduleTitles[number] = title
			}
		}
	}
}

// NewSerializer builds a serializer with the supplied options applied.
func NewSerializer(opts ...SerializerOption) *Serializer {
	s := &Serializer{moduleTitles: map[int]string{}}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Serialize renders units grouped by module in ascending order, units within
// a module in ascending order.
func (s *Serializer) Serialize(units []interfaces.Unit) string {
	var b strings.Builder
	for i, group := range GroupModules(units, s.moduleTitles) {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "# Module %d: %s\n", group.Number, group.Title)
		for _, unit := range group.Units {
			b.WriteString("\n")
			writeUnit(&b, unit)
		}
	}
	return b.String()
}

func writeUnit(b *strings.Builder, unit interfaces.Unit) {
	title := strings.TrimSpace(unit.Title)
	if title == "" {
		title = fmt.Sprintf("Unit %d", unit.Unit)
	}
	fmt.Fprintf(b, "## Unit %d: %s\n", unit.Unit, title)

	if content := strings.TrimSpace(expandVideoPlaceholders(unit.Content)); content != "" {
		b.WriteString("\n")
		b.WriteString(content)
		b.WriteString("\n")
	}
	if unit.HasSelfAssessment() {
		b.WriteString("\n")
		writeQuestionBlock(b, "self-assessment", interfaces.AssessmentSelf, unit.SelfAssessment.Questions)
	}
	if unit.HasTutorMarked() {
		b.WriteString("\n")
		writeQuestionBlock(b, "tutor-marked", interfaces.AssessmentTutor, unit.TutorMarked.Questions)
	}
}

func writeQuestionBlock(b *strings.Builder, fence string, kind interfaces.AssessmentKind, questions []interfaces.Question) {
	fmt.Fprintf(b, ":::%s\n", fence)
	for i, q := range questions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "**Question %d:** %s\n", i+1, strings.TrimSpace(q.Text))
		writeQuestionMarkers(b, kind, q)
	}
	b.WriteString(":::\n")
}

// writeQuestionMarkers emits whatever the question parser needs to recover
// the question type.
func writeQuestionMarkers(b *strings.Builder, kind interfaces.AssessmentKind, q interfaces.Question) {
	switch q.Type {
	case interfaces.QuestionMultipleChoice:
		for i, opt := range q.Options() {
			fmt.Fprintf(b, "%c) %s\n", 'a'+rune(i%26), opt)
		}
	case interfaces.QuestionCheckbox:
		b.WriteString("[checkbox]\n")
		for _, opt := range q.Options() {
			fmt.Fprintf(b, "- %s\n", opt)
		}
	case interfaces.QuestionRating:
		b.WriteString("[rating]\n")
	case interfaces.QuestionEssay:
		if kind == interfaces.AssessmentTutor {
			b.WriteString("[text-entry]\n")
		} else {
			b.WriteString("[essay]\n")
		}
	default:
		// A tutor-marked text-entry question reads back as an essay, so plain
		// text in a tutor block carries no marker unless its wording would be
		// read as another type or it has no wording at all. An option-less
		// checkbox marker reads back as text in both cases.
		switch {
		case kind != interfaces.AssessmentTutor:
			b.WriteString("[text-entry]\n")
		case !readsBackAsText(q.Text):
			b.WriteString("[checkbox]\n")
		}
	}
}

func readsBackAsText(text string) bool {
	q, ok := classifyQuestion(text, interfaces.AssessmentTutor, "", interfaces.QuestionText)
	return ok && q.Type == interfaces.QuestionText
}

// expandVideoPlaceholders turns placeholder lines back into video blocks.
// Placeholders sharing a line with other text are left as they are.
func expandVideoPlaceholders(content string) string {
	lines := strings.Split(content, "\n")
	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		m := placeholderPattern.FindStringSubmatch(trimmed)
		if m == nil || m[0] != trimmed {
			continue
		}
		lines[i] = ":::video\n" + WatchURL(m[1]) + "\n:::"
	}
	return strings.Join(lines, "\n")
}

// GroupModules groups units by module number, both levels sorted ascending.
// Titles come from titles when present, otherwise "Module <n>". The input
// slice is not modified.
func GroupModules(units []interfaces.Unit, titles map[int]string) []interfaces.ModuleGroup {
	sorted := slices.Clone(units)
	slices.SortStableFunc(sorted, func(a, b interfaces.Unit) int {
		if c := cmp.Compare(a.Module, b.Module); c != 0 {
			return c
		}
		return cmp.Compare(a.Unit, b.Unit)
	})

	var groups []interfaces.ModuleGroup
	for _, unit := range sorted {
		if n := len(groups); n > 0 && groups[n-1].Number == unit.Module {
			groups[n-1].Units = append(groups[n-1].Units, unit)
			continue
		}
		title := strings.TrimSpace(titles[unit.Module])
		if title == "" {
			title = fmt.Sprintf("Module %d", unit.Module)
		}
		groups = append(groups, interfaces.ModuleGroup{
			Number: unit.Module,
			Title:  title,
			Units:  []interfaces.Unit{unit},
		})
	}
	return groups
}

var defaultSerializer = NewSerializer()

// Serialize runs the default serializer.
func Serialize(units []interfaces.Unit) string {
	return defaultSerializer.Serialize(units)
}
