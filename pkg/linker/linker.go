// Package linker composes the concentric offset passes the headland
// generator produces into one continuous spiral path.
package linker

import (
	"math"

	"github.com/CourseplayPathEditor/course-generator/pkg/analyzer"
	"github.com/CourseplayPathEditor/course-generator/pkg/diagnostics"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
	"github.com/CourseplayPathEditor/course-generator/pkg/headland"
	"github.com/CourseplayPathEditor/course-generator/pkg/smooth"
)

// RayMaxDistance bounds the linker's transition ray search, meters.
const RayMaxDistance = 30.0

// transitionOffsetsRad are the three candidate headings tried in order
// when bridging from the end of one pass to the next: straight inward,
// then ±60°.
var transitionOffsetsRad = []float64{0, math.Pi / 3, -math.Pi / 3}

// Result is the composed spiral path plus the per-pass circle
// decoration recording how each pass was walked.
type Result struct {
	Path        []geo.Vertex
	Tracks      []headland.Track
	LinkFailed  bool
	FailedAtIdx int
}

// LinkHeadlandTracks composes passes (outermost first) into a single
// spiral starting nearest startLocation, optionally smoothing the
// result as an open path. sink may be nil.
func LinkHeadlandTracks(passes []geo.Polygon, desiredClockwise bool, startLocation geo.Point, doSmooth bool, angleThreshold float64, smoother smooth.Smoother, sink *diagnostics.Sink) Result {
	if len(passes) == 0 {
		return Result{}
	}

	analyzed := make([]geo.Polygon, len(passes))
	for i, p := range passes {
		if p.Analyzed {
			analyzed[i] = p
		} else {
			analyzed[i] = analyzer.Calculate(p)
		}
	}

	outer := analyzed[0]
	fromIndex := outer.NearestVertexIndex(startLocation)
	toIndex := geo.GetPolygonIndex(outer.Len(), fromIndex+1)

	var path []geo.Vertex
	var tracks []headland.Track
	result := Result{}

	for passNum := 0; passNum < len(analyzed); passNum++ {
		pass := analyzed[passNum]

		var step int
		var from, to int
		if pass.IsClockwise == desiredClockwise {
			from, to, step = toIndex, fromIndex, +1
		} else {
			from, to, step = fromIndex, toIndex, -1
		}

		track := headland.Track{Polygon: pass, CircleStart: from, CircleEnd: to, CircleStep: step}
		var lastVisited geo.Vertex
		geo.PolygonIterator(pass, from, to, step, func(index int, v geo.Vertex) bool {
			v.PassNumber = passNum
			path = append(path, v)
			lastVisited = v
			return true
		})
		tracks = append(tracks, track)

		if passNum == len(analyzed)-1 {
			break
		}

		nextPass := analyzed[passNum+1]
		inward := geo.Inward(pass.IsClockwise)
		baseAngle := lastVisited.Tangent.Angle + inward

		hit := false
		for _, off := range transitionOffsetsRad {
			pt, edgeIdx, ok := geo.RayPolygonIntersection(nextPass, lastVisited.Point, baseAngle+off, RayMaxDistance)
			if !ok {
				continue
			}
			fromIndex = edgeIdx
			toIndex = geo.GetPolygonIndex(nextPass.Len(), edgeIdx+1)
			bridgeVertex := geo.Vertex{Point: pt, PassNumber: passNum}
			path = append(path, bridgeVertex)
			hit = true
			break
		}
		if !hit {
			sink.Report(diagnostics.LinkFailure, "no ray-polygon intersection for any of the three candidate transition headings", passNum)
			result.LinkFailed = true
			result.FailedAtIdx = passNum
			break
		}
	}

	if doSmooth && smoother != nil && len(path) > 1 {
		pts := make([]geo.Point, len(path))
		for i, v := range path {
			pts[i] = v.Point
		}
		smoothedPts := smooth.OpenSmoothPadded(smoother, pts, angleThreshold, 1)
		path = reprojectFlags(path, smoothedPts)
	}

	result.Path = path
	result.Tracks = tracks
	return result
}

// reprojectFlags rebuilds a Vertex slice from smoothed points, carrying
// forward PassNumber from the nearest original vertex (by index ratio)
// since a spline resample changes the point count.
func reprojectFlags(original []geo.Vertex, smoothed []geo.Point) []geo.Vertex {
	if len(original) == 0 {
		return nil
	}
	out := make([]geo.Vertex, len(smoothed))
	for i, p := range smoothed {
		srcIdx := i * (len(original) - 1) / maxInt(len(smoothed)-1, 1)
		out[i] = geo.Vertex{Point: p, PassNumber: original[srcIdx].PassNumber}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
