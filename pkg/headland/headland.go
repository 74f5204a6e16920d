// Package headland computes inward polygon offsets — the concentric
// headland passes a vehicle drives around a field's boundary before
// filling the interior.
package headland

import (
	"math"

	"github.com/CourseplayPathEditor/course-generator/pkg/analyzer"
	"github.com/CourseplayPathEditor/course-generator/pkg/diagnostics"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
	"github.com/CourseplayPathEditor/course-generator/pkg/smooth"
)

// maxRecursionDepth caps the grassfire iteration to bound runtime on
// polygons that never converge to the target offset.
const maxRecursionDepth = 50

// Track is one concentric offset pass, decorated after linking with the
// index range and direction the linker actually walked across it.
type Track struct {
	geo.Polygon
	CircleStart int
	CircleEnd   int
	CircleStep  int
}

// Result reports the outcome of computing one inward offset pass,
// including whether it degraded.
type Result struct {
	Polygon         geo.Polygon
	ReachedTarget   bool
	RecursionCapHit bool
	Degenerate      bool
}

// Calculate produces a polygon offset inward from poly by targetOffset,
// using an iterative grassfire approximation. If doSmooth is true and a
// smoother is supplied, corners are smoothed each iteration with
// closed-ring padding. minVertexDistance feeds the low-pass filter,
// which runs with an angle threshold of π so it only removes too-close
// vertices, never too-sharp ones; angleThreshold is passed only to the
// smoother.
func Calculate(poly geo.Polygon, targetOffset, minVertexDistance, angleThreshold float64, doSmooth bool, smoother smooth.Smoother) Result {
	return CalculateWithDiagnostics(poly, targetOffset, minVertexDistance, angleThreshold, doSmooth, smoother, nil)
}

// CalculateWithDiagnostics is Calculate with an optional diagnostics
// sink receiving degenerate-polygon and offset-saturation reports.
func CalculateWithDiagnostics(poly geo.Polygon, targetOffset, minVertexDistance, angleThreshold float64, doSmooth bool, smoother smooth.Smoother, sink *diagnostics.Sink) Result {
	analyzed := analyzer.Calculate(poly)
	if analyzed.Len() < 3 {
		sink.Report(diagnostics.DegeneratePolygon, "boundary has fewer than 3 vertices", analyzed.Len())
		return Result{Polygon: analyzed, Degenerate: true}
	}
	return offsetLoop(analyzed, targetOffset, minVertexDistance, angleThreshold, doSmooth, smoother, sink)
}

// offsetLoop shrinks the polygon in steps of at most half the shortest
// edge length until the accumulated offset reaches the target.
func offsetLoop(poly geo.Polygon, targetOffset, minVertexDistance, angleThreshold float64, doSmooth bool, smoother smooth.Smoother, sink *diagnostics.Sink) Result {
	current := poly
	offsetSoFar := 0.0

	for depth := 0; depth < maxRecursionDepth; depth++ {
		if current.Len() < 3 {
			sink.Report(diagnostics.DegeneratePolygon, "polygon degenerated to fewer than 3 vertices during offsetting", depth)
			return Result{Polygon: current, Degenerate: true}
		}
		if offsetSoFar >= targetOffset-geo.Tolerance {
			return Result{Polygon: current, ReachedTarget: true}
		}

		deltaOffset := math.Min(current.ShortestEdgeLength/2, targetOffset-offsetSoFar)
		if deltaOffset <= 0 {
			// A zero-length shortest edge means the ring cannot shrink any
			// further; the remaining target distance is truncated.
			sink.Report(diagnostics.OffsetSaturation, "polygon cannot shrink further before reaching target offset", targetOffset-offsetSoFar)
			return Result{Polygon: current}
		}

		offsetOnce, ok := shrinkOnce(current, deltaOffset, minVertexDistance)
		if !ok || offsetOnce.Len() < 3 {
			sink.Report(diagnostics.DegeneratePolygon, "offset pass collapsed the polygon", depth)
			return Result{Polygon: current, Degenerate: true}
		}

		analyzed := analyzer.Calculate(offsetOnce)

		if doSmooth && smoother != nil {
			smoothedPts := smooth.ClosedSmooth(smoother, analyzed.Points(), angleThreshold, 1)
			analyzed = analyzer.Calculate(geo.NewPolygon(smoothedPts...))
		}

		filtered := ApplyLowPassFilter(analyzed, math.Pi, minVertexDistance)
		current = filtered
		offsetSoFar += deltaOffset
	}

	if offsetSoFar < targetOffset-geo.Tolerance {
		sink.Report(diagnostics.OffsetSaturation, "recursion cap reached before target offset", targetOffset-offsetSoFar)
	}
	return Result{Polygon: current, ReachedTarget: offsetSoFar >= targetOffset-geo.Tolerance, RecursionCapHit: true}
}

// shrinkOnce translates every edge of poly inward by delta and
// reconstructs vertices by intersecting each translated edge
// with the previous translated edge. When two translated edges
// no longer meet, the gap is bridged with its midpoint if it is smaller
// than minVertexDistance, or with both of its endpoints otherwise.
func shrinkOnce(poly geo.Polygon, delta, minVertexDistance float64) (geo.Polygon, bool) {
	n := poly.Len()
	if n < 3 {
		return poly, false
	}

	inward := geo.Inward(poly.IsClockwise)

	type shiftedEdge struct{ from, to geo.Point }
	shifted := make([]shiftedEdge, n)
	for i := 0; i < n; i++ {
		e := poly.Vertices[i].NextEdge
		offsetAngle := e.Angle + inward
		from := geo.AddPolarVectorToPoint(e.From, offsetAngle, delta)
		to := geo.AddPolarVectorToPoint(e.To, offsetAngle, delta)
		shifted[i] = shiftedEdge{from, to}
	}

	var out []geo.Point
	for i := 0; i < n; i++ {
		prev := shifted[(i-1+n)%n]
		cur := shifted[i]
		if pt, ok := geo.LineIntersection(prev.from, prev.to, cur.from, cur.to); ok {
			out = append(out, pt)
			continue
		}
		// The translated edges didn't meet: bridge the gap between the
		// previous edge's end and the current edge's start.
		gap := prev.to.Distance(cur.from)
		if gap < minVertexDistance {
			out = append(out, geo.MidPoint(prev.to, cur.from))
		} else {
			out = append(out, prev.to, cur.from)
		}
	}

	if len(out) < 3 {
		return geo.Polygon{}, false
	}
	return geo.NewPolygon(out...), true
}

// ApplyLowPassFilter removes vertices that are too close to their
// predecessor or that make too sharp a turn. distanceThreshold
// is compared against recomputed edge length; angleThreshold against the
// absolute delta between successive PrevEdge angles. The walk restarts
// its cursor at the merged vertex (does not advance) whenever it removes
// one, so a converged single pass is idempotent.
func ApplyLowPassFilter(poly geo.Polygon, angleThreshold, distanceThreshold float64) geo.Polygon {
	pts := poly.Points()
	n := len(pts)
	if n < 4 {
		return analyzer.Calculate(geo.NewPolygon(pts...))
	}

	cursor := 0
	for cursor < len(pts) {
		n = len(pts)
		if n < 4 {
			break
		}
		cp := pts[cursor]
		npIdx := (cursor + 1) % n
		np := pts[npIdx]

		edge := geo.NewEdge(cp, np)
		prevIdx := (cursor - 1 + n) % n
		prevEdge := geo.NewEdge(pts[prevIdx], cp)

		tooClose := edge.Length < distanceThreshold
		tooSharp := math.Abs(geo.GetDeltaAngle(prevEdge.Angle, edge.Angle)) > angleThreshold

		if tooClose || tooSharp {
			mid := geo.MidPoint(cp, np)
			// Replace np with mid, delete cp.
			merged := make([]geo.Point, 0, n-1)
			for i, p := range pts {
				if i == cursor {
					continue
				}
				if i == npIdx {
					merged = append(merged, mid)
					continue
				}
				merged = append(merged, p)
			}
			pts = merged
			// Do not advance the cursor; re-examine from the same position.
			if cursor >= len(pts) {
				cursor = 0
			}
			continue
		}
		cursor++
	}

	return analyzer.Calculate(geo.NewPolygon(pts...))
}
