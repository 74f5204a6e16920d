package headland

import (
	"testing"

	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

func square(side float64) geo.Polygon {
	return geo.NewPolygon(
		geo.Pt(0, 0),
		geo.Pt(side, 0),
		geo.Pt(side, side),
		geo.Pt(0, side),
	)
}

// pointInPolygon is a simple ray-cast containment test, used only to check
// the inward-offset invariant below — not part of the package under test.
func pointInPolygon(p geo.Point, poly geo.Polygon) bool {
	pts := poly.Points()
	n := len(pts)
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := pts[i], pts[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

func TestCalculateOffsetsInward(t *testing.T) {
	poly := square(100)
	result := Calculate(poly, 10, 0.5, 3.0, false, nil)
	if result.Degenerate {
		t.Fatal("did not expect a degenerate result for a 100x100 square")
	}
	if !result.ReachedTarget {
		t.Fatal("expected the offset target to be reached")
	}
	for _, v := range result.Polygon.Vertices {
		if !pointInPolygon(v.Point, poly) {
			t.Errorf("offset vertex %+v lies outside the original boundary", v.Point)
		}
	}
	bb := result.Polygon.BoundingBox
	if bb.Width() >= 100 || bb.Height() >= 100 {
		t.Errorf("expected offset bounding box smaller than source, got %+v", bb)
	}
}

func TestCalculateChainedPassesShrinkMonotonically(t *testing.T) {
	poly := square(100)
	pass1 := Calculate(poly, 5, 0.5, 3.0, false, nil)
	if pass1.Degenerate {
		t.Fatal("pass 1 degenerate")
	}
	pass2 := Calculate(pass1.Polygon, 5, 0.5, 3.0, false, nil)
	if pass2.Degenerate {
		t.Fatal("pass 2 degenerate")
	}
	for _, v := range pass2.Polygon.Vertices {
		if !pointInPolygon(v.Point, pass1.Polygon) {
			t.Errorf("pass 2 vertex %+v does not lie inside pass 1", v.Point)
		}
	}
}

func TestCalculateDegeneratePolygonPassesThrough(t *testing.T) {
	poly := geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 1))
	result := Calculate(poly, 5, 0.5, 3.0, false, nil)
	if !result.Degenerate {
		t.Fatal("expected a 2-vertex polygon to be reported degenerate")
	}
}

func TestApplyLowPassFilterDropsTooCloseVertex(t *testing.T) {
	poly := geo.NewPolygon(
		geo.Pt(0, 0),
		geo.Pt(10, 0),
		geo.Pt(10, 0.001),
		geo.Pt(10, 10),
		geo.Pt(0, 10),
	)
	filtered := ApplyLowPassFilter(poly, 3.0, 0.1)
	if len(filtered.Vertices) != 4 {
		t.Fatalf("expected the near-duplicate vertex to be merged away, got %d vertices", len(filtered.Vertices))
	}
}

func TestApplyLowPassFilterIsIdempotentOnceConverged(t *testing.T) {
	poly := square(50)
	once := ApplyLowPassFilter(poly, 3.0, 0.5)
	twice := ApplyLowPassFilter(once, 3.0, 0.5)
	if len(once.Vertices) != len(twice.Vertices) {
		t.Fatalf("expected a converged filter pass to be stable, got %d then %d vertices", len(once.Vertices), len(twice.Vertices))
	}
	for i := range once.Vertices {
		if once.Vertices[i].Point.Distance(twice.Vertices[i].Point) > 1e-9 {
			t.Errorf("vertex %d moved on a second filter pass: %+v -> %+v", i, once.Vertices[i].Point, twice.Vertices[i].Point)
		}
	}
}
