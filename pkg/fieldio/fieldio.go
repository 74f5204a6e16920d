// Package fieldio loads field project files and writes produced courses.
// A project is a directory holding field.yaml with the boundary and the
// planner tunables; a course is serialized as an XML waypoint list.
package fieldio

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/CourseplayPathEditor/course-generator/pkg/course"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

// PointSpec is one boundary vertex in the project file, meters.
type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// FieldProject is the on-disk field definition.
type FieldProject struct {
	Name     string      `yaml:"name"`
	Boundary []PointSpec `yaml:"boundary"`

	// Implement and headland configuration.
	Width             float64 `yaml:"width"`
	NHeadlandPasses   int     `yaml:"headland_passes"`
	HeadlandClockwise bool    `yaml:"headland_clockwise"`
	UseBoundaryAsPass bool    `yaml:"boundary_as_first_pass"`

	// Center fill configuration.
	OverlapPercent  float64 `yaml:"overlap_percent"`
	NTracksToSkip   int     `yaml:"tracks_to_skip"`
	ExtendTracks    float64 `yaml:"extend_tracks"`
	WaypointSpacing float64 `yaml:"waypoint_spacing"`

	// Geometry cleanup and smoothing.
	MinVertexDistance float64 `yaml:"min_vertex_distance"`
	AngleThreshold    float64 `yaml:"angle_threshold"`
	Smooth            bool    `yaml:"smooth"`

	// Where the vehicle enters the field.
	Start PointSpec `yaml:"start"`
}

// Load reads a field project from a YAML file.
func Load(path string) (*FieldProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading field file: %w", err)
	}

	var project FieldProject
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parsing field YAML: %w", err)
	}

	return &project, nil
}

// LoadProject loads a field project from a project directory.
// It looks for field.yaml in the given directory.
func LoadProject(projectDir string) (*FieldProject, error) {
	fieldPath := filepath.Join(projectDir, "field.yaml")
	return Load(fieldPath)
}

// BoundaryPolygon converts the project's boundary list to a polygon.
func (p *FieldProject) BoundaryPolygon() geo.Polygon {
	pts := make([]geo.Point, len(p.Boundary))
	for i, b := range p.Boundary {
		pts[i] = geo.Pt(b.X, b.Y)
	}
	return geo.NewPolygon(pts...)
}

// Options maps the project's tunables onto planner options. A zero
// MinVertexDistance becomes a conservative 0.5 m merge distance and a
// zero AngleThreshold becomes 3.0 rad; a zero WaypointSpacing is passed
// on and the planner applies its 5 m default.
func (p *FieldProject) Options() course.Options {
	minVertexDistance := p.MinVertexDistance
	if minVertexDistance <= 0 {
		minVertexDistance = 0.5
	}
	angleThreshold := p.AngleThreshold
	if angleThreshold <= 0 {
		angleThreshold = 3.0
	}
	return course.Options{
		ImplementWidth:                 p.Width,
		NHeadlandPasses:                p.NHeadlandPasses,
		HeadlandClockwise:              p.HeadlandClockwise,
		HeadlandStartLocation:          geo.Pt(p.Start.X, p.Start.Y),
		OverlapPercent:                 p.OverlapPercent,
		UseBoundaryAsFirstHeadlandPass: p.UseBoundaryAsPass,
		NTracksToSkip:                  p.NTracksToSkip,
		ExtendTracks:                   p.ExtendTracks,
		MinVertexDistance:              minVertexDistance,
		AngleThreshold:                 angleThreshold,
		DoSmooth:                       p.Smooth,
		WaypointSpacing:                p.WaypointSpacing,
	}
}
