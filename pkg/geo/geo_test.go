package geo

import (
	"math"
	"testing"
)

const tolerance = 1e-5

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func TestToPolarAxisCases(t *testing.T) {
	if a, _ := ToPolar(0, 5); !approxEqual(a, math.Pi/2, tolerance) {
		t.Errorf("toPolar(0,+y) = %f, want +pi/2", a)
	}
	if a, _ := ToPolar(0, -5); !approxEqual(a, -math.Pi/2, tolerance) {
		t.Errorf("toPolar(0,-y) = %f, want -pi/2", a)
	}
	if a, _ := ToPolar(-1, 0); !approxEqual(a, math.Pi, tolerance) {
		t.Errorf("toPolar(-1,0) = %f, want pi", a)
	}
	if a, _ := ToPolar(1, 0); !approxEqual(a, 0, tolerance) {
		t.Errorf("toPolar(1,0) = %f, want 0", a)
	}
}

func TestToPolarLength(t *testing.T) {
	if _, l := ToPolar(3, 4); !approxEqual(l, 5, tolerance) {
		t.Errorf("length = %f, want 5", l)
	}
	if _, l := ToPolar(-3, 4); !approxEqual(l, 5, tolerance) {
		t.Errorf("length = %f, want 5", l)
	}
	if a, _ := ToPolar(1, 1); !approxEqual(a*180/math.Pi, 45, tolerance) {
		t.Errorf("deg = %f, want 45", a*180/math.Pi)
	}
	if a, _ := ToPolar(-1, -1); !approxEqual(a*180/math.Pi, -135, tolerance) {
		t.Errorf("deg = %f, want -135", a*180/math.Pi)
	}
}

func TestGetAverageAngleIdempotent(t *testing.T) {
	a := 0.73
	if got := GetAverageAngle(a, a); !approxEqual(got, a, tolerance) {
		t.Errorf("getAverageAngle(a,a) = %f, want %f", got, a)
	}
}

func TestGetAverageAngleWrap(t *testing.T) {
	a := -178 * math.Pi / 180
	b := 176 * math.Pi / 180
	want := 179 * math.Pi / 180
	got := GetAverageAngle(a, b)
	if !approxEqual(got, want, 1e-4) {
		t.Errorf("getAverageAngle(-178,176) = %f deg, want 179 deg", got*180/math.Pi)
	}
}

func TestGetDeltaAngleInverse(t *testing.T) {
	a, b := 0.4, 2.9
	d1 := GetDeltaAngle(a, b)
	d2 := GetDeltaAngle(b, a)
	sum := NormalizeAngle(d1 + d2)
	if !approxEqual(math.Abs(sum), 0, 1e-4) && !approxEqual(math.Abs(sum), 2*math.Pi, 1e-4) {
		t.Errorf("delta(a,b)+delta(b,a) = %f, want 0 mod 2pi", d1+d2)
	}
}

func TestGetPolygonIndexWrap(t *testing.T) {
	n := 5
	if got := GetPolygonIndex(n, 0); got != n {
		t.Errorf("index(0) = %d, want %d", got, n)
	}
	for k := 1; k < n; k++ {
		if got := GetPolygonIndex(n, -k); got != n-k {
			t.Errorf("index(-%d) = %d, want %d", k, got, n-k)
		}
	}
	if got := GetPolygonIndex(n, n+2); got != 2 {
		t.Errorf("index(n+2) = %d, want 2", got)
	}
}

func TestPolygonIteratorForwardFullCircle(t *testing.T) {
	poly := NewPolygon(Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0))
	got := PolygonIndices(poly.Len(), 1, 4, 1)
	want := []int{1, 2, 3, 4}
	assertIntSliceEqual(t, got, want)
}

func TestPolygonIteratorWrapBackward(t *testing.T) {
	poly := NewPolygon(Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0))
	got := PolygonIndices(poly.Len(), 2, 3, -1)
	want := []int{2, 1, 4, 3}
	assertIntSliceEqual(t, got, want)
}

func TestPolygonIteratorFullCircleFromSameStart(t *testing.T) {
	poly := NewPolygon(Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0))
	got := PolygonIndices(poly.Len(), 3, 3, 1)
	want := []int{3, 4, 1, 2, 3}
	assertIntSliceEqual(t, got, want)
}

func TestReverseInvolution(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	got := Reverse(Reverse(s))
	assertIntSliceEqual(t, got, s)
}

func TestGetIntersectionWithinSegments(t *testing.T) {
	p, ok := GetIntersection(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok {
		t.Fatal("expected intersection")
	}
	if !approxEqual(p.X, 5, tolerance) || !approxEqual(p.Y, 5, tolerance) {
		t.Errorf("intersection = %+v, want (5,5)", p)
	}
}

func TestGetIntersectionOutsideSegments(t *testing.T) {
	_, ok := GetIntersection(Pt(0, 0), Pt(1, 1), Pt(5, 0), Pt(6, 1))
	if ok {
		t.Error("expected no intersection for non-overlapping segments")
	}
}

func TestGetIntersectionColinear(t *testing.T) {
	_, ok := GetIntersection(Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0))
	if ok {
		t.Error("expected no intersection for colinear segments")
	}
}

func TestPolygonSignedArea(t *testing.T) {
	square := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if a := square.SignedArea(); a <= 0 {
		t.Errorf("expected positive (CCW) area, got %f", a)
	}
	clockwise := square.Reverse()
	if a := clockwise.SignedArea(); a >= 0 {
		t.Errorf("expected negative (CW) area, got %f", a)
	}
}

func assertIntSliceEqual(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length = %d, want %d (%v vs %v)", len(got), len(want), got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
