// Package course is the planner's entry point: it chains the polygon
// analyzer, headland generator, headland linker, angle selector, center
// filler, and block sequencer into one pass that turns a field boundary
// into a drivable waypoint course.
package course

import (
	"context"
	"errors"
	"math"

	"github.com/CourseplayPathEditor/course-generator/pkg/analyzer"
	"github.com/CourseplayPathEditor/course-generator/pkg/angle"
	"github.com/CourseplayPathEditor/course-generator/pkg/center"
	"github.com/CourseplayPathEditor/course-generator/pkg/diagnostics"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
	"github.com/CourseplayPathEditor/course-generator/pkg/headland"
	"github.com/CourseplayPathEditor/course-generator/pkg/linker"
	"github.com/CourseplayPathEditor/course-generator/pkg/sequencer"
	"github.com/CourseplayPathEditor/course-generator/pkg/smooth"
)

// Options collects the planning parameters.
type Options struct {
	// ImplementWidth is the working width of the implement in meters.
	ImplementWidth float64
	// NHeadlandPasses is the number of concentric boundary passes.
	NHeadlandPasses int
	// HeadlandClockwise selects the driving direction around the headland.
	HeadlandClockwise bool
	// HeadlandStartLocation is where the vehicle enters the field.
	HeadlandStartLocation geo.Point
	// OverlapPercent shrinks the effective width so adjacent passes
	// overlap by that fraction.
	OverlapPercent float64
	// UseBoundaryAsFirstHeadlandPass drives the boundary itself as pass 1
	// instead of offsetting the first pass inward by half a width.
	UseBoundaryAsFirstHeadlandPass bool
	// NTracksToSkip applies the skip-N permutation to the center tracks.
	NTracksToSkip int
	// ExtendTracks lengthens (or, negative, shortens) every center track
	// at both ends, in meters.
	ExtendTracks float64
	// MinVertexDistance is the low-pass filter's merge distance.
	MinVertexDistance float64
	// AngleThreshold is handed to the smoother for headland and spiral
	// smoothing, radians. The low-pass filter run during offsetting
	// always uses π instead, so it never removes vertices for sharpness.
	AngleThreshold float64
	// DoSmooth runs the smoother over headland corners and the spiral.
	DoSmooth bool
	// WaypointSpacing overrides the 5 m default spacing when positive.
	WaypointSpacing float64
	// Smoother is the curve smoother used when DoSmooth is set; nil
	// disables smoothing regardless of DoSmooth.
	Smoother smooth.Smoother
	// Sink receives planner diagnostics; nil suppresses collection.
	Sink *diagnostics.Sink
}

// Field is the planning result aggregate. Everything on it is owned by
// the planning pass that produced it; callers treat it as immutable.
type Field struct {
	Boundary         geo.Polygon
	HeadlandTracks   []headland.Track
	HeadlandPath     []geo.Vertex
	CenterTracks     []*center.Track
	ConnectingTracks [][]geo.Point
	Course           []geo.Vertex
	BestAngleDeg     int
	NTracks          int
	BoundingBox      geo.BoundingBox
	IsClockwise      bool
	Diagnostics      []diagnostics.Event
}

// ErrDegenerateBoundary is returned when the input boundary cannot form
// a polygon at all.
var ErrDegenerateBoundary = errors.New("course: boundary must have at least 3 vertices")

// GenerateCourseForField plans a complete coverage course for boundary.
// ctx is checked between phases only; the planner has no blocking
// operations, so cancellation is cooperative and coarse.
func GenerateCourseForField(ctx context.Context, boundary geo.Polygon, opts Options) (*Field, error) {
	if boundary.Len() < 3 {
		return nil, ErrDegenerateBoundary
	}

	analyzed := analyzer.Calculate(boundary)
	field := &Field{
		Boundary:     analyzed,
		BoundingBox:  analyzed.BoundingBox,
		IsClockwise:  analyzed.IsClockwise,
		BestAngleDeg: -1,
	}

	width := opts.ImplementWidth * (1 - opts.OverlapPercent/100)
	spacing := opts.WaypointSpacing
	if spacing <= 0 {
		spacing = center.DefaultWaypointSpacing
	}

	passes := headlandPasses(analyzed, width, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inner := analyzed
	if len(passes) > 0 {
		linkRes := linker.LinkHeadlandTracks(passes, opts.HeadlandClockwise,
			opts.HeadlandStartLocation, opts.DoSmooth, opts.AngleThreshold, opts.Smoother, opts.Sink)
		field.HeadlandTracks = linkRes.Tracks
		field.HeadlandPath = linkRes.Path
		if linkRes.LinkFailed {
			// Passes beyond the failed transition were never walked; the
			// center fill works inside the innermost pass that was.
			inner = passes[linkRes.FailedAtIdx]
		} else {
			inner = passes[len(passes)-1]
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	field.Course = append(field.Course, field.HeadlandPath...)

	bestDeg, ok := angle.FindBestTrackAngle(inner, width)
	if !ok {
		if inner.BestDirection != nil {
			bestDeg = angle.FallbackDeg(inner.BestDirection.Dir)
		} else {
			bestDeg = 0
		}
		opts.Sink.Report(diagnostics.NoValidBestAngle,
			"no candidate angle produced any block; falling back to the dominant edge direction", bestDeg)
	}
	field.BestAngleDeg = bestDeg
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fillCenter(field, inner, bestDeg, width, spacing, opts)
	return field, nil
}

// headlandPasses generates the concentric offset polygons, outermost
// first. Pass 1 is offset by half a width from the boundary (or is the
// boundary itself when requested); every later pass steps in by a full
// width. A pass that degenerates truncates the list, leaving fewer
// passes than asked for.
func headlandPasses(analyzed geo.Polygon, width float64, opts Options) []geo.Polygon {
	var passes []geo.Polygon
	current := analyzed
	for i := 0; i < opts.NHeadlandPasses; i++ {
		if i == 0 && opts.UseBoundaryAsFirstHeadlandPass {
			passes = append(passes, current)
			continue
		}
		target := width
		if i == 0 {
			target = width / 2
		}
		res := headland.CalculateWithDiagnostics(current, target,
			opts.MinVertexDistance, opts.AngleThreshold, opts.DoSmooth, opts.Smoother, opts.Sink)
		if res.Degenerate {
			break
		}
		passes = append(passes, res.Polygon)
		current = res.Polygon
	}
	return passes
}

// fillCenter plans the interior: scan lines and blocks are built in a
// frame rotated so tracks are horizontal, the blocks are sequenced off
// the inner headland ring, and every produced point is rotated back.
func fillCenter(field *Field, inner geo.Polygon, bestDeg int, width, spacing float64, opts Options) {
	pivot := angle.RotationPivot(inner)
	rad := float64(bestDeg) * math.Pi / 180
	rotated := analyzer.Calculate(inner.RotateAround(pivot, rad))

	tracks := center.GenerateParallelTracks(rotated, width)
	center.FindIntersections(rotated, tracks)
	blocks := center.SplitCenterIntoBlocks(tracks)
	if len(blocks) == 0 {
		opts.Sink.Report(diagnostics.EmptyBlockSet,
			"interior has no scan line with two intersections; course is headland only", nil)
		finishDiagnostics(field, opts)
		return
	}

	// The block walk starts where the headland spiral ends, continuing in
	// the direction the innermost pass was driven.
	exit := opts.HeadlandStartLocation
	if len(field.HeadlandPath) > 0 {
		exit = field.HeadlandPath[len(field.HeadlandPath)-1].Point
	}
	step := 1
	if len(field.HeadlandTracks) > 0 {
		step = field.HeadlandTracks[len(field.HeadlandTracks)-1].CircleStep
	}
	n := rotated.Len()
	from := rotated.NearestVertexIndex(exit.RotateAround(pivot, rad))
	to := geo.GetPolygonIndex(n, from-step)

	trackNumber := 0
	for {
		blk, newFrom, newTo, found := sequencer.FindTrackToNextBlock(blocks, rotated, from, to, step)
		if !found {
			break
		}
		center.AddWaypointsToTracks(blk.Tracks, width, opts.ExtendTracks, spacing)
		seq, next := sequencer.LinkParallelTracks(blk, opts.NTracksToSkip, trackNumber)
		trackNumber = next

		connecting := rotatePointsBack(blk.TrackToThisBlock, pivot, rad)
		field.ConnectingTracks = append(field.ConnectingTracks, connecting)
		for _, p := range connecting {
			field.Course = append(field.Course, geo.Vertex{Point: p})
		}
		for _, v := range seq {
			v.Point = v.Point.RotateAround(pivot, -rad)
			field.Course = append(field.Course, v)
		}
		from, to = newFrom, newTo
	}
	field.NTracks = trackNumber

	residual := 0
	for _, b := range blocks {
		if !b.Covered {
			residual++
		}
	}
	if residual > 0 {
		opts.Sink.Report(diagnostics.ResidualBlocks,
			"sequencing left blocks unreachable from the inner headland", residual)
	}

	field.CenterTracks = rotateTracksBack(tracks, pivot, rad)
	finishDiagnostics(field, opts)
}

// rotatePointsBack maps rotated-frame points back to the world frame.
func rotatePointsBack(pts []geo.Point, pivot geo.Point, rad float64) []geo.Point {
	out := make([]geo.Point, len(pts))
	for i, p := range pts {
		out[i] = p.RotateAround(pivot, -rad)
	}
	return out
}

// rotateTracksBack maps the scan lines (endpoints and intersections)
// back to the world frame for the caller-visible aggregate.
func rotateTracksBack(tracks []*center.Track, pivot geo.Point, rad float64) []*center.Track {
	out := make([]*center.Track, len(tracks))
	for i, tr := range tracks {
		cp := &center.Track{
			From: tr.From.RotateAround(pivot, -rad),
			To:   tr.To.RotateAround(pivot, -rad),
		}
		for _, in := range tr.Intersections {
			cp.Intersections = append(cp.Intersections, center.Intersection{
				Point:     in.Point.RotateAround(pivot, -rad),
				EdgeIndex: in.EdgeIndex,
			})
		}
		cp.Waypoints = rotatePointsBack(tr.Waypoints, pivot, rad)
		out[i] = cp
	}
	return out
}

func finishDiagnostics(field *Field, opts Options) {
	if opts.Sink != nil {
		field.Diagnostics = opts.Sink.Events
	}
}
