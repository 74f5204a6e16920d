// Package analyzer computes per-vertex and whole-polygon geometric
// descriptors: edges, tangents, orientation, shortest edge, and the
// directional histogram used by the angle selector.
package analyzer

import (
	"math"

	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

// binWidthDeg is the width of one directional histogram bin.
const binWidthDeg = 10

// Calculate decorates a copy of poly with PrevEdge/NextEdge/Tangent on
// every vertex, the shortest edge length, the directional histogram,
// the dominant direction, the orientation flag, and the bounding box.
// The input is not mutated; the decorated copy is returned.
func Calculate(poly geo.Polygon) geo.Polygon {
	out := poly.Clone()
	n := out.Len()
	if n < 2 {
		out.Analyzed = true
		return out
	}

	edges := make([]geo.Edge, n)
	for i := 0; i < n; i++ {
		from := out.Vertices[i].Point
		to := out.Vertices[(i+1)%n].Point
		edges[i] = geo.NewEdge(from, to)
	}

	shortest := math.MaxFloat64
	stats := map[int]*geo.DirectionBin{}

	for i := 0; i < n; i++ {
		next := &edges[i]
		prev := &edges[(i-1+n)%n]
		out.Vertices[i].NextEdge = next
		out.Vertices[i].PrevEdge = prev

		to := out.Vertices[(i+1)%n].Point
		from := out.Vertices[(i-1+n)%n].Point
		tdx := to.X - from.X
		tdy := to.Y - from.Y
		tangentAngle, _ := geo.ToPolar(tdx, tdy)
		out.Vertices[i].Tangent = &geo.Tangent{Dx: tdx, Dy: tdy, Angle: tangentAngle}

		if next.Length < shortest {
			shortest = next.Length
		}

		binCenter := binCenterDeg(next.Angle)
		bin := stats[binCenter]
		if bin == nil {
			bin = &geo.DirectionBin{CenterDeg: binCenter}
			stats[binCenter] = bin
		}
		bin.TotalLength += next.Length
		bin.Angles = append(bin.Angles, next.Angle)
	}

	out.ShortestEdgeLength = shortest
	out.DirectionStats = stats
	out.BestDirection = bestDirection(stats)
	out.IsClockwise = computeIsClockwise(out.Vertices)
	out.BoundingBox = out.ComputeBoundingBox()
	out.Analyzed = true
	return out
}

// binCenterDeg returns the center, in degrees, of the 10°-wide histogram
// bin that angle (radians) falls into: floor(deg(angle)/10)*10 + 5.
func binCenterDeg(angle float64) int {
	deg := angle * 180 / math.Pi
	bin := int(math.Floor(deg/binWidthDeg)) * binWidthDeg
	return bin + binWidthDeg/2
}

// bestDirection picks the bin with the greatest accumulated length,
// reporting the mean of its contributing angles floored to 1e-6 rad.
func bestDirection(stats map[int]*geo.DirectionBin) *geo.BestDirection {
	var best *geo.DirectionBin
	for _, bin := range stats {
		if best == nil || bin.TotalLength > best.TotalLength {
			best = bin
		}
	}
	if best == nil {
		return nil
	}
	sum := 0.0
	for _, a := range best.Angles {
		sum += a
	}
	mean := sum / float64(len(best.Angles))
	return &geo.BestDirection{
		BinCenterDeg: best.CenterDeg,
		Dir:          math.Floor(mean*1e6) / 1e6,
	}
}

// computeIsClockwise derives orientation from the cumulative delta-angle
// between successive PrevEdge.Angle values around the ring, rather than
// from signed area. In a y-up frame a clockwise ring turns through −2π,
// so a negative cumulative delta means clockwise; geo.Inward depends on
// this labeling to point toward the interior.
func computeIsClockwise(vs []geo.Vertex) bool {
	n := len(vs)
	sum := 0.0
	for i := 0; i < n; i++ {
		a := vs[i].PrevEdge.Angle
		b := vs[(i+1)%n].PrevEdge.Angle
		sum += geo.GetDeltaAngle(a, b)
	}
	return sum < 0
}
