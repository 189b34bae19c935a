package coursemd

import (
	"slices"
	"testing"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

func TestParseQuestionBlockClassification(t *testing.T) {
	cases := []struct {
		name    string
		kind    interfaces.AssessmentKind
		body    string
		text    string
		typ     interfaces.QuestionType
		options []string
	}{
		{
			name: "self text entry",
			kind: interfaces.AssessmentSelf,
			body: "**Question 1:** What is 2+2?\n[text-entry]",
			text: "What is 2+2?",
			typ:  interfaces.QuestionText,
		},
		{
			name: "tutor text entry is essay",
			kind: interfaces.AssessmentTutor,
			body: "**Question 1:** What is 2+2?\n[text-entry]",
			text: "What is 2+2?",
			typ:  interfaces.QuestionEssay,
		},
		{
			name:    "checkbox marker",
			kind:    interfaces.AssessmentSelf,
			body:    "**Question 1:** Pick the primitives\n[checkbox]\n- int\n-\n- string\n- bool",
			text:    "Pick the primitives",
			typ:     interfaces.QuestionCheckbox,
			options: []string{"int", "string", "bool"},
		},
		{
			name:    "multiple choice with cue",
			kind:    interfaces.AssessmentSelf,
			body:    "**Question 1:** Choose the capital of France\na) Paris\nb) London",
			text:    "Choose the capital of France",
			typ:     interfaces.QuestionMultipleChoice,
			options: []string{"Paris", "London"},
		},
		{
			name:    "multiple choice dotted letters",
			kind:    interfaces.AssessmentSelf,
			body:    "**Question 1:** Select one\nA. yes\nB. no",
			text:    "Select one",
			typ:     interfaces.QuestionMultipleChoice,
			options: []string{"yes", "no"},
		},
		{
			name:    "multiple choice without cue",
			kind:    interfaces.AssessmentSelf,
			body:    "**Question 1:** What is the capital of France?\na) Paris\nb) London",
			text:    "What is the capital of France?",
			typ:     interfaces.QuestionMultipleChoice,
			options: []string{"Paris", "London"},
		},
		{
			name:    "select with dash options",
			kind:    interfaces.AssessmentSelf,
			body:    "**Question 1:** Select all that apply\n- one\n- two",
			text:    "Select all that apply",
			typ:     interfaces.QuestionCheckbox,
			options: []string{"one", "two"},
		},
		{
			name: "choose without options",
			kind: interfaces.AssessmentSelf,
			body: "**Question 1:** Choose a project topic",
			text: "Choose a project topic",
			typ:  interfaces.QuestionText,
		},
		{
			name:    "multiple choice past d",
			kind:    interfaces.AssessmentSelf,
			body:    "**Question 1:** Choose a weekday\na) mon\nb) tue\nc) wed\nd) thu\ne) fri",
			text:    "Choose a weekday",
			typ:     interfaces.QuestionMultipleChoice,
			options: []string{"mon", "tue", "wed", "thu", "fri"},
		},
		{
			name: "essay wording",
			kind: interfaces.AssessmentSelf,
			body: "**Question 1:** Write a short essay on interfaces",
			text: "Write a short essay on interfaces",
			typ:  interfaces.QuestionEssay,
		},
		{
			name: "essay marker",
			kind: interfaces.AssessmentSelf,
			body: "**Question 1:** Reflect on the module\n[essay]",
			text: "Reflect on the module",
			typ:  interfaces.QuestionEssay,
		},
		{
			name: "rating marker",
			kind: interfaces.AssessmentSelf,
			body: "**Question 1:** How confident are you?\n[rating]",
			text: "How confident are you?",
			typ:  interfaces.QuestionRating,
		},
		{
			name: "essay lead",
			kind: interfaces.AssessmentTutor,
			body: "**Essay Question:** Describe goroutines.",
			text: "Describe goroutines.",
			typ:  interfaces.QuestionEssay,
		},
		{
			name: "self block without lead",
			kind: interfaces.AssessmentSelf,
			body: "Summarise the unit in your own words.",
			text: "Summarise the unit in your own words.",
			typ:  interfaces.QuestionText,
		},
		{
			name: "tutor block without lead",
			kind: interfaces.AssessmentTutor,
			body: "Build a todo application.",
			text: "Build a todo application.",
			typ:  interfaces.QuestionEssay,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			questions := parseQuestionBlock(tc.body, tc.kind, 0)
			if len(questions) != 1 {
				t.Fatalf("expected 1 question, got %d", len(questions))
			}
			q := questions[0]
			if q.Text != tc.text {
				t.Fatalf("expected text %q, got %q", tc.text, q.Text)
			}
			if q.Type != tc.typ {
				t.Fatalf("expected type %s, got %s", tc.typ, q.Type)
			}
			if !slices.Equal(q.Options(), tc.options) {
				t.Fatalf("expected options %v, got %v", tc.options, q.Options())
			}
		})
	}
}

func TestParseQuestionBlockSplitsOnLeads(t *testing.T) {
	body := "Ignored preface\n**Question 1:** One\n[text-entry]\n\n**question 2:** Two\n[rating]\n**Question 3:**\n"
	questions := parseQuestionBlock(body, interfaces.AssessmentSelf, 2)
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != "self_2_q1" || questions[1].ID != "self_2_q2" {
		t.Fatalf("unexpected ids %q %q", questions[0].ID, questions[1].ID)
	}
	if questions[1].Type != interfaces.QuestionRating {
		t.Fatalf("expected rating, got %s", questions[1].Type)
	}
}

func TestParseQuestionBlockPrefersNumberedLeads(t *testing.T) {
	body := "**Question 1:** Explain it\n[text-entry]\n**Essay Question:** Not a separate lead here"
	questions := parseQuestionBlock(body, interfaces.AssessmentTutor, 0)
	if len(questions) != 1 {
		t.Fatalf("expected the numbered lead to win, got %d questions", len(questions))
	}
}

func TestQuestionID(t *testing.T) {
	if got := QuestionID(interfaces.AssessmentTutor, 1, 3); got != "tutor_1_q3" {
		t.Fatalf("unexpected id %q", got)
	}
}
