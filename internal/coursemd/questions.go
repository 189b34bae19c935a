package coursemd

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

var (
	// Lead markers are tried in order; the first one found anywhere in the
	// block decides how the block is split. An unmarked question under the
	// essay lead is an essay.
	questionLeads = []questionLead{
		{pattern: regexp.MustCompile(`(?i)\*\*Question \d+:\*\*`), fallback: interfaces.QuestionText},
		{pattern: regexp.MustCompile(`(?i)\*\*Essay Question:\*\*`), fallback: interfaces.QuestionEssay},
	}

	textEntryMarker = regexp.MustCompile(`(?i)\[text-entry\]`)
	checkboxMarker  = regexp.MustCompile(`(?i)\[checkbox\]`)
	ratingMarker    = regexp.MustCompile(`(?i)\[rating\]`)
	essayMarker     = regexp.MustCompile(`(?i)\[essay\]`)
	leadingStars    = regexp.MustCompile(`^\*+\s*`)
	letterOption    = regexp.MustCompile(`^[a-zA-Z][).]\s+(.*)$`)
)

type questionLead struct {
	pattern  *regexp.Regexp
	fallback interfaces.QuestionType
}

// QuestionID builds the deterministic identifier for the n-th question
// (1-based) of the blockIndex-th block of the given kind within a unit.
func QuestionID(kind interfaces.AssessmentKind, blockIndex, n int) string {
	return fmt.Sprintf("%s_%d_q%d", kind, blockIndex, n)
}

// parseQuestionBlock splits a fenced block body into questions. When no lead
// marker is present the whole body is a single question whose default type
// depends on the block kind.
func parseQuestionBlock(body string, kind interfaces.AssessmentKind, blockIndex int) []interfaces.Question {
	for _, lead := range questionLeads {
		locs := lead.pattern.FindAllStringIndex(body, -1)
		if len(locs) == 0 {
			continue
		}
		questions := make([]interfaces.Question, 0, len(locs))
		for i, loc := range locs {
			end := len(body)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			q, ok := classifyQuestion(body[loc[1]:end], kind, QuestionID(kind, blockIndex, i+1), lead.fallback)
			if ok {
				questions = append(questions, q)
			}
		}
		return questions
	}

	fallback := interfaces.QuestionText
	if kind == interfaces.AssessmentTutor {
		fallback = interfaces.QuestionEssay
	}
	if q, ok := classifyQuestion(body, kind, QuestionID(kind, blockIndex, 1), fallback); ok {
		return []interfaces.Question{q}
	}
	return nil
}

// classifyQuestion decides the type of a single question from its markers and
// wording. Lines consumed as options are removed from the display text.
func classifyQuestion(raw string, kind interfaces.AssessmentKind, id string, fallback interfaces.QuestionType) (interfaces.Question, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return interfaces.Question{}, false
	}
	lines := strings.Split(raw, "\n")
	lower := strings.ToLower(raw)

	switch {
	case textEntryMarker.MatchString(raw):
		typ := interfaces.QuestionText
		if kind == interfaces.AssessmentTutor {
			typ = interfaces.QuestionEssay
		}
		return interfaces.NewQuestion(id, displayText(lines, nil), typ), true

	case checkboxMarker.MatchString(raw):
		options, used := dashOptions(lines)
		return interfaces.NewChoiceQuestion(id, displayText(lines, used), interfaces.QuestionCheckbox, options), true

	case ratingMarker.MatchString(raw):
		return interfaces.NewQuestion(id, displayText(lines, nil), interfaces.QuestionRating), true

	case strings.Contains(lower, "essay"):
		return interfaces.NewQuestion(id, displayText(lines, nil), interfaces.QuestionEssay), true

	case strings.Contains(lower, "choose") || strings.Contains(lower, "select"):
		if options, used := letterOptions(lines); len(options) > 0 {
			return interfaces.NewChoiceQuestion(id, displayText(lines, used), interfaces.QuestionMultipleChoice, options), true
		}
		if options, used := dashOptions(lines); len(options) > 0 {
			return interfaces.NewChoiceQuestion(id, displayText(lines, used), interfaces.QuestionCheckbox, options), true
		}
		return interfaces.NewQuestion(id, displayText(lines, nil), interfaces.QuestionText), true
	}

	// Lettered option lists are recognised without a "choose" cue as long as
	// there is more than one of them, matching how authors write quizzes.
	if options, used := letterOptions(lines); len(options) > 1 {
		return interfaces.NewChoiceQuestion(id, displayText(lines, used), interfaces.QuestionMultipleChoice, options), true
	}
	return interfaces.NewQuestion(id, displayText(lines, nil), fallback), true
}

func letterOptions(lines []string) ([]string, map[int]bool) {
	var options []string
	used := map[int]bool{}
	for i, ln := range lines {
		m := letterOption.FindStringSubmatch(strings.TrimSpace(ln))
		if m == nil {
			continue
		}
		used[i] = true
		options = append(options, strings.TrimSpace(m[1]))
	}
	return options, used
}

func dashOptions(lines []string) ([]string, map[int]bool) {
	var options []string
	used := map[int]bool{}
	for i, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		used[i] = true
		if option := strings.TrimSpace(trimmed[1:]); option != "" {
			options = append(options, option)
		}
	}
	return options, used
}

// displayText joins the lines not consumed as options, strips inline type
// markers and leading emphasis, and collapses the blank lines left behind.
func displayText(lines []string, skip map[int]bool) string {
	kept := make([]string, 0, len(lines))
	for i, ln := range lines {
		if skip[i] {
			continue
		}
		ln = textEntryMarker.ReplaceAllString(ln, "")
		ln = checkboxMarker.ReplaceAllString(ln, "")
		ln = ratingMarker.ReplaceAllString(ln, "")
		ln = essayMarker.ReplaceAllString(ln, "")
		ln = strings.TrimRight(ln, " \t\r")
		if ln == "" && (len(kept) == 0 || kept[len(kept)-1] == "") {
			continue
		}
		kept = append(kept, ln)
	}
	text := strings.TrimSpace(strings.Join(kept, "\n"))
	return strings.TrimSpace(leadingStars.ReplaceAllString(text, ""))
}
