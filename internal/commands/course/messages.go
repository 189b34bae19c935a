package coursecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

const (
	parseCourseMessageType       = "coursemd.course.parse"
	formatCourseMessageType      = "coursemd.course.format"
	validateDirectoryMessageType = "coursemd.course.validate_directory"
)

// ParseCourseCommand loads a single course file and parses it into units.
type ParseCourseCommand struct {
	// Path locates the course file relative to the service base path.
	Path string `json:"path"`
	// OnParsed receives the parsed document when the command succeeds.
	OnParsed func(*interfaces.CourseDocument) `json:"-"`
}

// Type implements command.Message.
func (ParseCourseCommand) Type() string { return parseCourseMessageType }

// CourseTarget names the course file for logs and errors.
func (cmd ParseCourseCommand) CourseTarget() string { return cmd.Path }

// Validate ensures a path is present before handlers execute.
func (cmd ParseCourseCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requiredText(
			"coursemd.course.parse.path_required", "path is required",
		))),
	)
}

// FormatCourseCommand loads a course file and writes it back out in the
// canonical authoring layout.
type FormatCourseCommand struct {
	// Path locates the course file relative to the service base path.
	Path string `json:"path"`
	// Output is an optional filesystem path the formatted document is written to.
	Output string `json:"output,omitempty"`
	// OnFormatted receives the formatted bytes when the command succeeds.
	OnFormatted func([]byte) `json:"-"`
}

// Type implements command.Message.
func (FormatCourseCommand) Type() string { return formatCourseMessageType }

func (cmd FormatCourseCommand) CourseTarget() string { return cmd.Path }

// Validate ensures the command has a source and somewhere to deliver the result.
func (cmd FormatCourseCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(requiredText(
			"coursemd.course.format.path_required", "path is required",
		))),
		validation.Field(&cmd.Output, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" && cmd.OnFormatted == nil {
				return validation.NewError("coursemd.course.format.destination_required", "output path or result callback is required")
			}
			return nil
		})),
	)
}

// ValidateDirectoryCommand parses every course file under Directory and
// checks the units against the unit schema.
type ValidateDirectoryCommand struct {
	// Directory selects the folder to scan, relative to the service base path.
	Directory string `json:"directory"`
	// FailOnIssues turns any reported issue into a command error.
	FailOnIssues bool `json:"fail_on_issues,omitempty"`
	// OnReport receives one report per loaded document.
	OnReport func(DocumentReport) `json:"-"`
}

// Type implements command.Message.
func (ValidateDirectoryCommand) Type() string { return validateDirectoryMessageType }

func (cmd ValidateDirectoryCommand) CourseTarget() string { return cmd.Directory }

// Validate ensures directory input is present before handlers execute.
func (cmd ValidateDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(requiredText(
			"coursemd.course.validate_directory.directory_required", "directory is required",
		))),
	)
}

func requiredText(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
