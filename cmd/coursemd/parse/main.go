package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-coursemd/cmd/coursemd/internal/bootstrap"
	coursecmd "github.com/goliatone/go-coursemd/internal/commands/course"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runParse(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("course parse: %v", err)
	}
}

type parseOutput struct {
	Path         string            `json:"path"`
	Slug         string            `json:"slug,omitempty"`
	Title        string            `json:"title,omitempty"`
	ModuleTitles map[int]string    `json:"moduleTitles,omitempty"`
	Units        []interfaces.Unit `json:"units"`
}

func runParse(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("course-parse", flag.ContinueOnError)
	courseDir := fs.String("course-dir", ".", "Path to the course content root")
	configPath := fs.String("config", "", "Optional YAML configuration file")
	file := fs.String("file", "", "Course file to parse, relative to the content root")
	validate := fs.Bool("validate", false, "Validate parsed units against the unit schema")
	logLevel := fs.String("log-level", "", "Enable logging at the given level")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		CourseDir:  *courseDir,
		Validation: *validate,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("course service not configured")
	}

	handler := coursecmd.NewParseCourseHandler(module.Service, module.Logger, coursecmd.FeatureGates{
		ValidationEnabled: func() bool { return *validate || module.ValidationEnabled() },
	})

	var doc *interfaces.CourseDocument
	cmd := coursecmd.ParseCourseCommand{
		Path:     *file,
		OnParsed: func(parsed *interfaces.CourseDocument) { doc = parsed },
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute parse command: %w", err)
	}

	payload := parseOutput{
		Path:         doc.FilePath,
		Slug:         doc.Slug,
		Title:        doc.FrontMatter.Title,
		ModuleTitles: doc.ModuleTitles,
		Units:        doc.Units,
	}
	if payload.Units == nil {
		payload.Units = []interfaces.Unit{}
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
