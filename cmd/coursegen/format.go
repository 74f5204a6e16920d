package main

import (
	"fmt"

	"github.com/CourseplayPathEditor/course-generator/pkg/course"
	"github.com/CourseplayPathEditor/course-generator/pkg/fieldio"
)

func printValidationReport(r *fieldio.Report) {
	if len(r.Errors) > 0 {
		fmt.Printf("ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Printf("  %s\n", e.Message)
			if e.FieldPath != "" {
				fmt.Printf("    -> %s = %v\n", e.FieldPath, e.ActualValue)
			}
			if e.Expected != "" {
				fmt.Printf("    expected: %s\n", e.Expected)
			}
		}
		fmt.Println()
	}

	if len(r.Warnings) > 0 {
		fmt.Printf("WARNINGS (%d):\n", len(r.Warnings))
		for _, w := range r.Warnings {
			fmt.Printf("  %s\n", w.Message)
			if w.FieldPath != "" {
				fmt.Printf("    -> %s = %v\n", w.FieldPath, w.ActualValue)
			}
		}
		fmt.Println()
	}

	if r.Valid {
		fmt.Printf("Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Printf("Result: INVALID (%s)\n", r.Summary)
	}
}

func printFieldSummary(name string, f *course.Field) {
	fmt.Printf("Field: %s\n", name)
	fmt.Printf("  Headland passes:   %d\n", len(f.HeadlandTracks))
	fmt.Printf("  Headland points:   %d\n", len(f.HeadlandPath))
	fmt.Printf("  Best track angle:  %d deg\n", f.BestAngleDeg)
	fmt.Printf("  Center tracks:     %d\n", f.NTracks)
	fmt.Printf("  Course points:     %d\n", len(f.Course))
	if len(f.Diagnostics) > 0 {
		fmt.Printf("  Diagnostics (%d):\n", len(f.Diagnostics))
		for _, d := range f.Diagnostics {
			fmt.Printf("    [%s] %s\n", d.Kind, d.Message)
		}
	}
}
