package validation

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

//go:embed units.schema.json
var unitsSchemaSource []byte

var (
	unitsSchemaOnce sync.Once
	unitsSchema     *jsonschema.Schema
	unitsSchemaErr  error
)

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// PayloadValidationError surfaces validation issues with JSON pointer context.
type PayloadValidationError struct {
	Issues []ValidationIssue
	Cause  error
}

func (e *PayloadValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return e.Cause.Error()
		}
		return ErrSchemaValidation.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *PayloadValidationError) Unwrap() error {
	return ErrSchemaValidation
}

// Issues extracts validation issues from an error.
func Issues(err error) []ValidationIssue {
	if err == nil {
		return nil
	}
	var payloadErr *PayloadValidationError
	if errors.As(err, &payloadErr) && payloadErr != nil {
		return payloadErr.Issues
	}
	var validationErr *jsonschema.ValidationError
	if errors.As(err, &validationErr) && validationErr != nil {
		return collectValidationIssues(validationErr)
	}
	return []ValidationIssue{{Message: err.Error()}}
}

// ValidateUnits checks parsed units against the unit wire schema and the
// positional rules the schema cannot express: (module, unit) pairs and
// question ids within a unit must be unique.
func ValidateUnits(units []interfaces.Unit) error {
	schema, err := compiledUnitsSchema()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, err)
	}

	if units == nil {
		units = []interfaces.Unit{}
	}
	encoded, err := json.Marshal(units)
	if err != nil {
		return fmt.Errorf("%w: encode units: %v", ErrSchemaValidation, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(encoded))
	decoder.UseNumber()
	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return fmt.Errorf("%w: decode units: %v", ErrSchemaValidation, err)
	}

	var issues []ValidationIssue
	var cause error
	if err := schema.Validate(payload); err != nil {
		issues = append(issues, Issues(err)...)
		cause = err
	}
	issues = append(issues, positionalIssues(units)...)
	if len(issues) == 0 {
		return nil
	}
	return &PayloadValidationError{Issues: issues, Cause: cause}
}

func positionalIssues(units []interfaces.Unit) []ValidationIssue {
	var issues []ValidationIssue
	seenUnits := map[[2]int]int{}
	for i, unit := range units {
		key := [2]int{unit.Module, unit.Unit}
		if first, ok := seenUnits[key]; ok {
			issues = append(issues, ValidationIssue{
				Location: fmt.Sprintf("/%d", i),
				Message:  fmt.Sprintf("unit %d-%d duplicates /%d", unit.Module, unit.Unit, first),
			})
		} else {
			seenUnits[key] = i
		}

		seenQuestions := map[string]bool{}
		for _, entry := range []struct {
			field string
			set   *interfaces.QuestionSet
		}{
			{"selfAssessment", unit.SelfAssessment},
			{"tutorMarked", unit.TutorMarked},
		} {
			field, set := entry.field, entry.set
			if set == nil {
				continue
			}
			for j, q := range set.Questions {
				if q.ID != "" && seenQuestions[q.ID] {
					issues = append(issues, ValidationIssue{
						Location: fmt.Sprintf("/%d/%s/questions/%d/id", i, field, j),
						Message:  fmt.Sprintf("duplicate question id %q", q.ID),
					})
				}
				seenQuestions[q.ID] = true
			}
		}
	}
	return issues
}

func compiledUnitsSchema() (*jsonschema.Schema, error) {
	unitsSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("units.schema.json", bytes.NewReader(unitsSchemaSource)); err != nil {
			unitsSchemaErr = err
			return
		}
		unitsSchema, unitsSchemaErr = compiler.Compile("units.schema.json")
	})
	return unitsSchema, unitsSchemaErr
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
