package coursemd

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

const (
	tutorSectionTitle      = "Tutor-Marked Assessment"
	completionSectionTitle = "Completion Criteria"

	// StandaloneAssignmentID identifies the question synthesized for a
	// heading-delimited tutor-marked section.
	StandaloneAssignmentID = "assignment1"
	// StandaloneAssignmentPrompt is the prompt attached to that question.
	StandaloneAssignmentPrompt = "Complete the practical assignment for this module. Demonstrate your understanding by creating a working example that incorporates the concepts learned."
)

var (
	selfBlockPattern  = fencePattern("self-assessment")
	tutorBlockPattern = fencePattern("tutor-marked")
	videoBlockPattern = regexp.MustCompile(
		`(?im)^:::video[ \t]*\r?\n[ \t]*(https?://(?:www\.)?(?:youtube\.com/watch\?v=|youtu\.be/)[\w-]+\S*)[ \t]*\r?\n:::[ \t]*\r?$`,
	)
	ruleLinePattern = regexp.MustCompile(`(?m)^(?:-{3,}|\*{3,}|_{3,})[ \t]*\r?$`)
)

// fenceBodyLine matches one line that does not start with ":::". Bodies are
// built from these so an unterminated opener can never run on to the closer
// of a later block.
const fenceBodyLine = `(?:[^:\n][^\n]*|::?(?:[^:\n][^\n]*)?)?`

// fencePattern matches a ":::<keyword>" opener line, the body lines and the
// first following line consisting of ":::". An empty body is allowed.
func fencePattern(keyword string) *regexp.Regexp {
	body := fenceBodyLine + `(?:\n` + fenceBodyLine + `)*?`
	return regexp.MustCompile(`(?im)^:::` + regexp.QuoteMeta(keyword) + `[ \t]*\r?\n(?:(` + body + `)\r?\n)?:::[ \t]*\r?$`)
}

// extracted is the result of pass two over a single unit span.
type extracted struct {
	content string
	self    *interfaces.QuestionSet
	tutor   *interfaces.QuestionSet
}

// extractContent is pass two. Extraction runs in a fixed order and each step
// sees the content left behind by the previous one: self-assessment blocks,
// tutor-marked blocks, video blocks, a standalone tutor section (only when no
// tutor block was found) and finally housekeeping cleanup.
func (p *Parser) extractContent(raw string) extracted {
	content := strings.TrimSpace(raw)

	content, self := p.extractAssessments(content, selfBlockPattern, interfaces.AssessmentSelf)
	content, tutor := p.extractAssessments(content, tutorBlockPattern, interfaces.AssessmentTutor)
	content = p.replaceVideos(content)

	if tutor == nil {
		var found bool
		content, found = stripSections(content, tutorSectionTitle)
		if found {
			p.logger.Debug("parser.tutor_section.synthesized")
			tutor = &interfaces.QuestionSet{
				Kind: interfaces.AssessmentTutor,
				Questions: []interfaces.Question{
					interfaces.NewQuestion(StandaloneAssignmentID, StandaloneAssignmentPrompt, interfaces.QuestionEssay),
				},
			}
		}
	}

	content, _ = stripSections(content, completionSectionTitle)
	content = ruleLinePattern.ReplaceAllString(content, "")

	return extracted{
		content: strings.TrimSpace(content),
		self:    self,
		tutor:   tutor,
	}
}

// extractAssessments removes every block matched by pattern and merges their
// questions in order of appearance. A nil set is returned when no question
// was found so callers can treat presence as "has assessment".
func (p *Parser) extractAssessments(content string, pattern *regexp.Regexp, kind interfaces.AssessmentKind) (string, *interfaces.QuestionSet) {
	matches := pattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var (
		questions []interfaces.Question
		cuts      = make([][2]int, 0, len(matches))
	)
	for blockIndex, m := range matches {
		body := ""
		if m[2] >= 0 {
			body = content[m[2]:m[3]]
		}
		questions = append(questions, parseQuestionBlock(strings.TrimSpace(body), kind, blockIndex)...)
		cuts = append(cuts, [2]int{m[0], m[1]})
	}
	p.logger.Debug("parser.assessment.blocks", "kind", string(kind), "blocks", len(matches), "questions", len(questions))

	content = cutRanges(content, cuts)
	if len(questions) == 0 {
		return content, nil
	}
	return content, &interfaces.QuestionSet{Kind: kind, Questions: questions}
}

// replaceVideos swaps each recognised video block for its placeholder token.
// Blocks whose identifier cannot be extracted are left untouched.
func (p *Parser) replaceVideos(content string) string {
	replaced := 0
	out := videoBlockPattern.ReplaceAllStringFunc(content, func(block string) string {
		m := videoBlockPattern.FindStringSubmatch(block)
		if m == nil {
			return block
		}
		id, ok := YouTubeID(m[1])
		if !ok {
			return block
		}
		replaced++
		return VideoPlaceholder(id)
	})
	if replaced > 0 {
		p.logger.Debug("parser.video.replaced", "count", replaced)
	}
	return out
}

// stripSections removes every heading-delimited section with the given title.
func stripSections(content, title string) (string, bool) {
	bounds := sectionBounds(content, title)
	if len(bounds) == 0 {
		return content, false
	}
	return cutRanges(content, bounds), true
}
