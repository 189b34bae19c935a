package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-coursemd/cmd/coursemd/internal/bootstrap"
	coursecmd "github.com/goliatone/go-coursemd/internal/commands/course"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runValidate(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("course validate: %v", err)
	}
}

func runValidate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("course-validate", flag.ContinueOnError)
	courseDir := fs.String("course-dir", ".", "Path to the course content root")
	configPath := fs.String("config", "", "Optional YAML configuration file")
	pattern := fs.String("pattern", "", "Glob pattern applied when discovering course files")
	directory := fs.String("directory", ".", "Directory to validate, relative to the content root")
	strict := fs.Bool("strict", true, "Exit with an error when any document has issues")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		CourseDir:  *courseDir,
		Pattern:    *pattern,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("course service not configured")
	}

	handler := coursecmd.NewValidateDirectoryHandler(module.Service, module.Logger)
	cmd := coursecmd.ValidateDirectoryCommand{
		Directory:    *directory,
		FailOnIssues: *strict,
		OnReport: func(report coursecmd.DocumentReport) {
			if report.Valid() {
				fmt.Fprintf(out, "ok   %s (%d units)\n", report.Path, report.Units)
				return
			}
			fmt.Fprintf(out, "FAIL %s (%d units)\n", report.Path, report.Units)
			for _, issue := range report.Issues {
				location := issue.Location
				if location == "" {
					location = "#"
				}
				fmt.Fprintf(out, "     %s: %s\n", location, issue.Message)
			}
		},
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute validate command: %w", err)
	}
	return nil
}
