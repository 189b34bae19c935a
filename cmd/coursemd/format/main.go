package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/goliatone/go-coursemd/cmd/coursemd/internal/bootstrap"
	coursecmd "github.com/goliatone/go-coursemd/internal/commands/course"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runFormat(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("course format: %v", err)
	}
}

func runFormat(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("course-format", flag.ContinueOnError)
	courseDir := fs.String("course-dir", ".", "Path to the course content root")
	configPath := fs.String("config", "", "Optional YAML configuration file")
	file := fs.String("file", "", "Course file to format, relative to the content root")
	output := fs.String("output", "", "Write the formatted document to this path instead of stdout")
	write := fs.Bool("w", false, "Rewrite the source file in place")
	validate := fs.Bool("validate", false, "Refuse to format documents whose units fail validation")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}
	if *write && *output != "" {
		return fmt.Errorf("-w and -output are mutually exclusive")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		CourseDir:  *courseDir,
		Validation: *validate,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("course service not configured")
	}

	handler := coursecmd.NewFormatCourseHandler(module.Service, module.Logger, coursecmd.FeatureGates{
		ValidationEnabled: func() bool { return *validate || module.ValidationEnabled() },
	})

	cmd := coursecmd.FormatCourseCommand{Path: *file, Output: *output}
	if *write {
		cmd.Output = filepath.Join(*courseDir, *file)
	}
	if cmd.Output == "" {
		cmd.OnFormatted = func(data []byte) {
			_, _ = out.Write(data)
		}
	}

	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute format command: %w", err)
	}
	if cmd.Output != "" {
		fmt.Fprintf(out, "formatted %s -> %s\n", *file, cmd.Output)
	}
	return nil
}
