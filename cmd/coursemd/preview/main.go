package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-coursemd/cmd/coursemd/internal/bootstrap"
	"github.com/goliatone/go-coursemd/internal/coursemd"
	"github.com/goliatone/go-coursemd/internal/progress"
	"github.com/goliatone/go-coursemd/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("course preview: %v", err)
	}
}

func runPreview(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("course-preview", flag.ContinueOnError)
	courseDir := fs.String("course-dir", ".", "Path to the course content root")
	configPath := fs.String("config", "", "Optional YAML configuration file")
	file := fs.String("file", "", "Course file to preview, relative to the content root")
	unitKey := fs.String("unit", "", "Only preview the unit with this key (module-unit, e.g. 1-2)")
	renderHTML := fs.Bool("render-html", false, "Render unit content into HTML")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ConfigPath: *configPath,
		CourseDir:  *courseDir,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Service == nil {
		return fmt.Errorf("course service not configured")
	}

	ctx := context.Background()
	doc, err := module.Service.Load(ctx, *file)
	if err != nil {
		return fmt.Errorf("load course document: %w", err)
	}

	title := doc.FrontMatter.Title
	if title == "" {
		title = doc.Slug
	}
	fmt.Fprintf(out, "Course: %s\nPath: %s\nChecksum: %x\n", title, doc.FilePath, doc.Checksum)

	summary := progress.Summarize(doc.Units, doc.ModuleTitles, progress.NewSnapshot())
	fmt.Fprintf(out, "Units: %d\n", summary.TotalUnits)

	for _, group := range coursemd.GroupModules(doc.Units, doc.ModuleTitles) {
		fmt.Fprintf(out, "\nModule %d: %s\n", group.Number, group.Title)
		for _, unit := range group.Units {
			if *unitKey != "" && progress.UnitKey(unit.Module, unit.Unit) != *unitKey {
				continue
			}
			if err := previewUnit(ctx, out, module.Service, unit, *renderHTML); err != nil {
				return err
			}
		}
	}
	return nil
}

func previewUnit(ctx context.Context, out io.Writer, service interfaces.CourseService, unit interfaces.Unit, renderHTML bool) error {
	fmt.Fprintf(out, "  Unit %d: %s\n", unit.Unit, unit.Title)

	if renderHTML {
		segments, err := service.RenderUnit(ctx, unit, interfaces.RenderOptions{})
		if err != nil {
			return fmt.Errorf("render unit %d-%d: %w", unit.Module, unit.Unit, err)
		}
		for _, segment := range segments {
			switch segment.Kind {
			case interfaces.SegmentVideo:
				fmt.Fprintf(out, "    [video] %s\n", segment.EmbedURL)
			default:
				fmt.Fprintf(out, "    %s\n", strings.ReplaceAll(strings.TrimSpace(segment.HTML), "\n", "\n    "))
			}
		}
	} else {
		for _, segment := range coursemd.SplitVideoPlaceholders(unit.Content) {
			if segment.IsVideo() {
				fmt.Fprintf(out, "    [video] %s\n", coursemd.WatchURL(segment.VideoID))
				continue
			}
			fmt.Fprintf(out, "    %s\n", strings.ReplaceAll(strings.TrimSpace(segment.Text), "\n", "\n    "))
		}
	}

	for _, set := range []*interfaces.QuestionSet{unit.SelfAssessment, unit.TutorMarked} {
		if set == nil {
			continue
		}
		for _, q := range set.Questions {
			fmt.Fprintf(out, "    ? [%s/%s] %s\n", set.Kind, q.Type, q.Text)
			for _, opt := range q.Options() {
				fmt.Fprintf(out, "      - %s\n", opt)
			}
		}
	}
	return nil
}
