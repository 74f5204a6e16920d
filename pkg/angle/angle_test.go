package angle

import (
	"testing"

	"github.com/CourseplayPathEditor/course-generator/pkg/analyzer"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

func TestFindBestTrackAngleWideRectanglePrefersLongAxis(t *testing.T) {
	// A 200x60 rectangle: tracks along the long axis mean fewer, longer
	// tracks, which the score rewards.
	poly := analyzer.Calculate(geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(200, 0), geo.Pt(200, 60), geo.Pt(0, 60),
	))
	deg, ok := FindBestTrackAngle(poly, 10)
	if !ok {
		t.Fatal("expected a valid best angle for a rectangle")
	}
	if deg != 0 {
		t.Errorf("best angle = %d, want 0 (tracks parallel to the long axis)", deg)
	}
}

func TestFindBestTrackAngleTallRectangle(t *testing.T) {
	poly := analyzer.Calculate(geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(60, 0), geo.Pt(60, 200), geo.Pt(0, 200),
	))
	deg, ok := FindBestTrackAngle(poly, 10)
	if !ok {
		t.Fatal("expected a valid best angle")
	}
	if deg != 90 {
		t.Errorf("best angle = %d, want 90", deg)
	}
}

func TestFindBestTrackAngleSquareTieBreaksToSmallest(t *testing.T) {
	poly := analyzer.Calculate(geo.NewPolygon(
		geo.Pt(0, 0), geo.Pt(100, 0), geo.Pt(100, 100), geo.Pt(0, 100),
	))
	deg, ok := FindBestTrackAngle(poly, 10)
	if !ok {
		t.Fatal("expected a valid best angle")
	}
	if deg != 0 {
		t.Errorf("best angle = %d, want 0 (0 and 90 tie, smallest wins)", deg)
	}
}

func TestFindBestTrackAngleDegenerateFallsBack(t *testing.T) {
	poly := analyzer.Calculate(geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 0), geo.Pt(2, 0)))
	if _, ok := FindBestTrackAngle(poly, 10); ok {
		t.Error("expected no valid angle for a zero-area polygon")
	}
}

func TestFallbackDeg(t *testing.T) {
	cases := []struct {
		rad  float64
		want int
	}{
		{0, 0},
		{3.14159265, 0},
		{1.5707963, 90},
		{-1.5707963, 90},
	}
	for _, c := range cases {
		if got := FallbackDeg(c.rad); got != c.want {
			t.Errorf("FallbackDeg(%f) = %d, want %d", c.rad, got, c.want)
		}
	}
}
