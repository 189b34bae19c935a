package interfaces

import (
	"encoding/json"
	"fmt"
)

// CourseParser converts an authored course document into its ordered units.
// Implementations must be total: every input yields a (possibly empty) slice
// and never an error or panic.
type CourseParser interface {
	Parse(markdown string) []Unit
}

// CourseSerializer renders units back into the authoring dialect.
type CourseSerializer interface {
	Serialize(units []Unit) string
}

// Unit is the atomic content record produced by the course parser.
type Unit struct {
	Module         int          `json:"module"`
	Unit           int          `json:"unit"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	SelfAssessment *QuestionSet `json:"selfAssessment,omitempty"`
	TutorMarked    *QuestionSet `json:"tutorMarked,omitempty"`
}

// HasSelfAssessment reports whether the unit carries at least one self-assessment question.
func (u Unit) HasSelfAssessment() bool {
	return u.SelfAssessment != nil && len(u.SelfAssessment.Questions) > 0
}

// HasTutorMarked reports whether the unit carries at least one tutor-marked question.
func (u Unit) HasTutorMarked() bool {
	return u.TutorMarked != nil && len(u.TutorMarked.Questions) > 0
}

// ModuleGroup is the derived view callers use to render a course outline.
type ModuleGroup struct {
	Number int
	Title  string
	Units  []Unit
}

// AssessmentKind distinguishes ungated practice from manually reviewed work.
type AssessmentKind string

const (
	AssessmentSelf  AssessmentKind = "self"
	AssessmentTutor AssessmentKind = "tutor"
)

// QuestionSet groups the questions of one assessment kind attached to a unit.
type QuestionSet struct {
	Kind      AssessmentKind `json:"type"`
	Questions []Question     `json:"questions"`
}

// QuestionType enumerates the answer widgets a question can request.
type QuestionType string

const (
	QuestionText           QuestionType = "text"
	QuestionEssay          QuestionType = "essay"
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionCheckbox       QuestionType = "checkbox"
	QuestionRating         QuestionType = "rating"
)

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionEssay, QuestionMultipleChoice, QuestionCheckbox, QuestionRating:
		return true
	default:
		return false
	}
}

// HasOptions reports whether questions of this type carry a list of choices.
func (t QuestionType) HasOptions() bool {
	return t == QuestionMultipleChoice || t == QuestionCheckbox
}

// Question is a single assessment prompt. Choices are only reachable through
// Options and only exist for multiple-choice and checkbox questions.
type Question struct {
	ID      string
	Text    string
	Type    QuestionType
	options []string
}

// NewQuestion builds a question without choices. Choice types passed here
// degrade to QuestionText because they would have nothing to choose from.
func NewQuestion(id, text string, typ QuestionType) Question {
	if typ.HasOptions() || !typ.Valid() {
		typ = QuestionText
	}
	return Question{ID: id, Text: text, Type: typ}
}

// NewChoiceQuestion builds a multiple-choice or checkbox question. An empty
// option list or a non-choice type yields a plain question instead.
func NewChoiceQuestion(id, text string, typ QuestionType, options []string) Question {
	if !typ.HasOptions() || len(options) == 0 {
		return NewQuestion(id, text, typ)
	}
	return Question{
		ID:      id,
		Text:    text,
		Type:    typ,
		options: append([]string(nil), options...),
	}
}

// Options returns a copy of the question's choices, or nil for types without choices.
func (q Question) Options() []string {
	if !q.Type.HasOptions() || len(q.options) == 0 {
		return nil
	}
	return append([]string(nil), q.options...)
}

type questionJSON struct {
	ID       string       `json:"id"`
	Question string       `json:"question"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"`
}

// MarshalJSON emits the wire shape consumed by the rendering layer.
func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(questionJSON{
		ID:       q.ID,
		Question: q.Text,
		Type:     q.Type,
		Options:  q.Options(),
	})
}

// UnmarshalJSON accepts the wire shape and enforces the options invariant.
func (q *Question) UnmarshalJSON(data []byte) error {
	var raw questionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if !raw.Type.Valid() {
		return fmt.Errorf("question %s: unknown type %q", raw.ID, raw.Type)
	}
	if raw.Type.HasOptions() {
		*q = NewChoiceQuestion(raw.ID, raw.Question, raw.Type, raw.Options)
		return nil
	}
	*q = NewQuestion(raw.ID, raw.Question, raw.Type)
	return nil
}
