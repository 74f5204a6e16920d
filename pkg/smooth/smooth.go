// Package smooth provides the curve smoothing the headland generator
// and headland linker consume. The planner only depends on the Smoother
// interface; CatmullRomSmoother is a concrete default.
package smooth

import "github.com/CourseplayPathEditor/course-generator/pkg/geo"

// Smoother replaces a polyline with a smoothed resample of it.
// angleThreshold and iterations are implementation-defined tuning knobs;
// a smoother that ignores either is free to do so. Implementations treat
// the input as an open path; callers wanting closed-loop smoothing pad
// or wrap the input themselves, duplicating the first/last vertex
// before calling and trimming the padding back off.
type Smoother interface {
	Smooth(points []geo.Point, angleThreshold float64, iterations int) []geo.Point
}

// CatmullRomSmoother resamples a path through a uniform Catmull-Rom
// (cardinal) spline drawn through the input vertices.
type CatmullRomSmoother struct {
	// SamplesPerSegment controls output density; defaults to 8 if zero.
	SamplesPerSegment int
	// Tension is the cardinal-spline tension parameter (0.5 = standard
	// Catmull-Rom).
	Tension float64
}

// Smooth implements Smoother. iterations repeats the resample that many
// times (each pass further relaxes sharp corners); angleThreshold is
// unused by this implementation — a spline resample does not reason
// about per-corner angles the way a corner-cutting smoother would.
func (s CatmullRomSmoother) Smooth(points []geo.Point, _ float64, iterations int) []geo.Point {
	if len(points) < 3 {
		return points
	}
	samples := s.SamplesPerSegment
	if samples <= 0 {
		samples = 8
	}
	tension := s.Tension
	if tension == 0 {
		tension = 0.5
	}
	if iterations < 1 {
		iterations = 1
	}

	out := points
	for it := 0; it < iterations; it++ {
		out = catmullRomOpen(out, samples, tension)
	}
	return out
}

// catmullRomOpen evaluates an open uniform Catmull-Rom spline through
// controlPoints, emitting samplesPerSegment points per segment plus the
// final control point.
func catmullRomOpen(controlPoints []geo.Point, samplesPerSegment int, tension float64) []geo.Point {
	n := len(controlPoints)
	if n < 3 {
		return controlPoints
	}

	extended := make([]geo.Point, n+2)
	extended[0] = controlPoints[0].Add(controlPoints[0].Sub(controlPoints[1]))
	copy(extended[1:], controlPoints)
	extended[n+1] = controlPoints[n-1].Add(controlPoints[n-1].Sub(controlPoints[n-2]))

	var pts []geo.Point
	for i := 1; i < n; i++ {
		p0, p1, p2, p3 := extended[i-1], extended[i], extended[i+1], extended[i+2]
		for j := 0; j < samplesPerSegment; j++ {
			t := float64(j) / float64(samplesPerSegment)
			pts = append(pts, catmullRomPoint(p0, p1, p2, p3, t, tension))
		}
	}
	pts = append(pts, controlPoints[n-1])
	return pts
}

// catmullRomPoint evaluates a single point on a Catmull-Rom segment.
func catmullRomPoint(p0, p1, p2, p3 geo.Point, t, s float64) geo.Point {
	t2 := t * t
	t3 := t2 * t

	x := (-s*p0.X+(2-s)*p1.X+(s-2)*p2.X+s*p3.X)*t3 +
		(2*s*p0.X+(s-3)*p1.X+(3-2*s)*p2.X-s*p3.X)*t2 +
		(-s*p0.X+s*p2.X)*t +
		p1.X

	y := (-s*p0.Y+(2-s)*p1.Y+(s-2)*p2.Y+s*p3.Y)*t3 +
		(2*s*p0.Y+(s-3)*p1.Y+(3-2*s)*p2.Y-s*p3.Y)*t2 +
		(-s*p0.Y+s*p2.Y)*t +
		p1.Y

	return geo.Point{X: x, Y: y}
}

// ClosedSmooth smooths a closed ring: it pads the front with the last
// vertex and the back with the first vertex, so the smoother sees the
// ring's wrap-around neighbours instead of an open path with a seam,
// then trims the padding back off.
func ClosedSmooth(s Smoother, points []geo.Point, angleThreshold float64, iterations int) []geo.Point {
	if len(points) < 3 {
		return points
	}
	padded := make([]geo.Point, 0, len(points)+2)
	padded = append(padded, points[len(points)-1])
	padded = append(padded, points...)
	padded = append(padded, points[0])

	smoothed := s.Smooth(padded, angleThreshold, iterations)
	if len(smoothed) <= 2 {
		return smoothed
	}
	return smoothed[1 : len(smoothed)-1]
}

// OpenSmoothPadded smooths an open path by duplicating its first and
// last vertex before calling the smoother, then removing the padding,
// which prevents the smoother from treating the path as a closed loop.
func OpenSmoothPadded(s Smoother, points []geo.Point, angleThreshold float64, iterations int) []geo.Point {
	if len(points) < 2 {
		return points
	}
	padded := make([]geo.Point, 0, len(points)+2)
	padded = append(padded, points[0])
	padded = append(padded, points...)
	padded = append(padded, points[len(points)-1])

	smoothed := s.Smooth(padded, angleThreshold, iterations)
	if len(smoothed) <= 2 {
		return smoothed
	}
	return smoothed[1 : len(smoothed)-1]
}
