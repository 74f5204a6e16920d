package main

import (
	"context"
	"fmt"
	"os"

	"github.com/CourseplayPathEditor/course-generator/pkg/analyzer"
	"github.com/CourseplayPathEditor/course-generator/pkg/angle"
	"github.com/CourseplayPathEditor/course-generator/pkg/course"
	"github.com/CourseplayPathEditor/course-generator/pkg/diagnostics"
	"github.com/CourseplayPathEditor/course-generator/pkg/fieldio"
	"github.com/CourseplayPathEditor/course-generator/pkg/headland"
	"github.com/CourseplayPathEditor/course-generator/pkg/smooth"
)

// loadAndValidate loads the field project and runs validation.
func loadAndValidate(projectPath string) (*fieldio.FieldProject, *fieldio.Report, error) {
	project, err := fieldio.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading field project: %w", err)
	}
	report := fieldio.Validate(project)
	return project, report, nil
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runGenerate(ctx context.Context, projectPath, outPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	project, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("field project has validation errors")
	}

	opts := project.Options()
	opts.Smoother = smooth.CatmullRomSmoother{}
	opts.Sink = &diagnostics.Sink{}

	field, err := course.GenerateCourseForField(ctx, project.BoundaryPolygon(), opts)
	if err != nil {
		return fmt.Errorf("planning course: %w", err)
	}

	if err := fieldio.WriteCourse(project.Name, field.Course, outPath); err != nil {
		return err
	}

	printFieldSummary(project.Name, field)
	fmt.Printf("Course written to %s\n", outPath)
	return nil
}

func runAngle(projectPath string) error {
	project, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	if !report.Valid {
		printValidationReport(report)
		return fmt.Errorf("field project has validation errors")
	}

	opts := project.Options()
	width := opts.ImplementWidth * (1 - opts.OverlapPercent/100)

	// Offset down to the innermost headland first: the angle choice is
	// made over the interior that remains, not the raw boundary.
	inner := analyzer.Calculate(project.BoundaryPolygon())
	for i := 0; i < opts.NHeadlandPasses; i++ {
		target := width
		if i == 0 {
			target = width / 2
		}
		res := headland.Calculate(inner, target, opts.MinVertexDistance, opts.AngleThreshold, false, nil)
		if res.Degenerate {
			break
		}
		inner = res.Polygon
	}

	deg, ok := angle.FindBestTrackAngle(inner, width)
	if !ok {
		if inner.BestDirection != nil {
			deg = angle.FallbackDeg(inner.BestDirection.Dir)
			fmt.Printf("No angle produced a workable block; dominant edge direction %d deg used instead.\n", deg)
			return nil
		}
		return fmt.Errorf("no workable track angle for this field")
	}
	fmt.Printf("Best track angle: %d deg\n", deg)
	return nil
}
