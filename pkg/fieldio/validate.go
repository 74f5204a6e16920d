package fieldio

import (
	"fmt"

	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Result is a single validation finding.
type Result struct {
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	FieldPath   string   `json:"field_path"`
	ActualValue any      `json:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty"`
}

// Report is the complete validation output for a field project.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []Result `json:"errors"`
	Warnings []Result `json:"warnings"`
	Summary  string   `json:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	return &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
	}
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings", len(r.Errors), len(r.Warnings))
}

// Validate checks a field project for problems that would make planning
// fail or silently degrade.
func Validate(p *FieldProject) *Report {
	r := NewReport()

	if len(p.Boundary) < 3 {
		r.AddError(Result{
			Message:     "boundary must have at least 3 vertices",
			FieldPath:   "boundary",
			ActualValue: len(p.Boundary),
			Expected:    ">= 3 points",
		})
	}
	for i := 0; len(p.Boundary) >= 2 && i < len(p.Boundary); i++ {
		a := p.Boundary[i]
		b := p.Boundary[(i+1)%len(p.Boundary)]
		if geo.Pt(a.X, a.Y).Equal(geo.Pt(b.X, b.Y)) {
			r.AddError(Result{
				Message:   fmt.Sprintf("boundary vertices %d and %d coincide", i, (i+1)%len(p.Boundary)),
				FieldPath: fmt.Sprintf("boundary[%d]", i),
				Expected:  "consecutive vertices at distinct positions",
			})
		}
	}
	if len(p.Boundary) >= 3 {
		area := p.BoundaryPolygon().SignedArea()
		if area > -geo.Tolerance && area < geo.Tolerance {
			r.AddError(Result{
				Message:   "boundary encloses no area",
				FieldPath: "boundary",
				Expected:  "a simple closed polygon with nonzero area",
			})
		}
	}

	if p.Width <= 0 {
		r.AddError(Result{
			Message:     "implement width must be positive",
			FieldPath:   "width",
			ActualValue: p.Width,
			Expected:    "> 0 meters",
		})
	}
	if p.NHeadlandPasses < 0 {
		r.AddError(Result{
			Message:     "headland pass count cannot be negative",
			FieldPath:   "headland_passes",
			ActualValue: p.NHeadlandPasses,
			Expected:    ">= 0",
		})
	}
	if p.OverlapPercent < 0 || p.OverlapPercent >= 100 {
		r.AddError(Result{
			Message:     "overlap percent out of range",
			FieldPath:   "overlap_percent",
			ActualValue: p.OverlapPercent,
			Expected:    "0 <= overlap < 100",
		})
	}
	if p.NTracksToSkip < 0 {
		r.AddError(Result{
			Message:     "tracks to skip cannot be negative",
			FieldPath:   "tracks_to_skip",
			ActualValue: p.NTracksToSkip,
			Expected:    ">= 0",
		})
	}

	if p.NHeadlandPasses == 0 {
		r.AddWarning(Result{
			Message:   "no headland passes: the vehicle has no room to turn at track ends",
			FieldPath: "headland_passes",
		})
	}
	if p.WaypointSpacing < 0 {
		r.AddWarning(Result{
			Message:     "negative waypoint spacing ignored, default used",
			FieldPath:   "waypoint_spacing",
			ActualValue: p.WaypointSpacing,
		})
	}

	if r.Summary == "" {
		r.updateSummary()
	}
	return r
}
