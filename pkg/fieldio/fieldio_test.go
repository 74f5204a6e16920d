package fieldio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

const sampleProject = `
name: north-forty
width: 10
headland_passes: 2
headland_clockwise: false
overlap_percent: 5
tracks_to_skip: 1
smooth: true
start: {x: 0, y: 0}
boundary:
  - {x: 0, y: 0}
  - {x: 100, y: 0}
  - {x: 100, y: 100}
  - {x: 0, y: 100}
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "field.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadProject(t *testing.T) {
	dir := writeProject(t, sampleProject)
	p, err := LoadProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "north-forty" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Width != 10 || p.NHeadlandPasses != 2 || p.NTracksToSkip != 1 {
		t.Errorf("tunables not parsed: %+v", p)
	}
	if len(p.Boundary) != 4 {
		t.Fatalf("boundary has %d points", len(p.Boundary))
	}
	if poly := p.BoundaryPolygon(); poly.Len() != 4 {
		t.Errorf("polygon has %d vertices", poly.Len())
	}
}

func TestLoadProjectMissingFile(t *testing.T) {
	if _, err := LoadProject(t.TempDir()); err == nil {
		t.Fatal("expected an error for a directory without field.yaml")
	}
}

func TestOptionsAppliesDefaults(t *testing.T) {
	dir := writeProject(t, sampleProject)
	p, err := LoadProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	opts := p.Options()
	if opts.MinVertexDistance != 0.5 {
		t.Errorf("MinVertexDistance default = %f", opts.MinVertexDistance)
	}
	if opts.AngleThreshold != 3.0 {
		t.Errorf("AngleThreshold default = %f", opts.AngleThreshold)
	}
	if opts.ImplementWidth != 10 || opts.OverlapPercent != 5 {
		t.Errorf("options not mapped: %+v", opts)
	}
}

func TestValidateAcceptsGoodProject(t *testing.T) {
	dir := writeProject(t, sampleProject)
	p, err := LoadProject(dir)
	if err != nil {
		t.Fatal(err)
	}
	r := Validate(p)
	if !r.Valid {
		t.Errorf("expected valid, got %+v", r.Errors)
	}
}

func TestValidateRejectsBadProjects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*FieldProject)
	}{
		{"too few points", func(p *FieldProject) { p.Boundary = p.Boundary[:2] }},
		{"zero width", func(p *FieldProject) { p.Width = 0 }},
		{"negative passes", func(p *FieldProject) { p.NHeadlandPasses = -1 }},
		{"overlap too large", func(p *FieldProject) { p.OverlapPercent = 100 }},
		{"duplicate vertices", func(p *FieldProject) { p.Boundary[1] = p.Boundary[0] }},
		{"collinear boundary", func(p *FieldProject) {
			p.Boundary = []PointSpec{{0, 0}, {1, 0}, {2, 0}}
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := writeProject(t, sampleProject)
			p, err := LoadProject(dir)
			if err != nil {
				t.Fatal(err)
			}
			c.mutate(p)
			if r := Validate(p); r.Valid {
				t.Error("expected an invalid report")
			}
		})
	}
}

func TestWriteAndReadCourse(t *testing.T) {
	vertices := []geo.Vertex{
		{Point: geo.Pt(0, 0), PassNumber: 0},
		{Point: geo.Pt(10, 0), PassNumber: 1},
		{Point: geo.Pt(10, 10), Track: 0, TurnStart: true},
		{Point: geo.Pt(0, 10), Track: 1, TurnEnd: true},
	}
	path := filepath.Join(t.TempDir(), "course.xml")
	if err := WriteCourse("north-forty", vertices, path); err != nil {
		t.Fatal(err)
	}

	name, got, err := ReadCourse(path)
	if err != nil {
		t.Fatal(err)
	}
	if name != "north-forty" {
		t.Errorf("name = %q", name)
	}
	if len(got) != len(vertices) {
		t.Fatalf("read %d waypoints, want %d", len(got), len(vertices))
	}
	for i := range vertices {
		if !got[i].Point.Equal(vertices[i].Point) ||
			got[i].PassNumber != vertices[i].PassNumber ||
			got[i].Track != vertices[i].Track ||
			got[i].TurnStart != vertices[i].TurnStart ||
			got[i].TurnEnd != vertices[i].TurnEnd {
			t.Errorf("waypoint %d = %+v, want %+v", i, got[i], vertices[i])
		}
	}
}
