// Package angle picks the direction the interior parallel tracks should
// run: every even angle in [0°, 178°] is evaluated by rotating the inner
// headland, generating scan lines, and scoring the resulting block
// structure; the minimum-score angle wins.
package angle

import (
	"math"

	"github.com/CourseplayPathEditor/course-generator/pkg/analyzer"
	"github.com/CourseplayPathEditor/course-generator/pkg/center"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

// ScanStepDeg is the angle scan granularity.
const ScanStepDeg = 2

// smallBlockMinTracks is the block size below which a block counts as
// "small" for scoring purposes.
const smallBlockMinTracks = 5

// Score weights. Small blocks hurt the most (they force extra headland
// trips for little coverage), then block count, then split tracks, with
// the raw track count as the tiebreaker term.
const (
	weightSmallBlocks = 50
	weightBlocks      = 20
	weightSplitTracks = 5
	weightFullTracks  = 1
)

// FindBestTrackAngle evaluates every candidate angle over the inner
// headland and returns the minimum-score one in degrees. Ties go to the
// smallest angle (the scan ascends, and only a strictly better score
// replaces the incumbent). ok is false when no angle produced any block
// at all; the caller falls back to the polygon's dominant edge direction.
func FindBestTrackAngle(inner geo.Polygon, width float64) (bestDeg int, ok bool) {
	if !inner.Analyzed {
		inner = analyzer.Calculate(inner)
	}
	pivot := RotationPivot(inner)

	bestScore := math.MaxInt
	bestDeg = -1
	for deg := 0; deg < 180; deg += ScanStepDeg {
		score, valid := scoreAngle(inner, pivot, deg, width)
		if !valid {
			continue
		}
		if score < bestScore {
			bestScore = score
			bestDeg = deg
		}
	}
	return bestDeg, bestDeg >= 0
}

// scoreAngle rotates the polygon by deg, generates scan lines, and
// computes 50·nSmallBlocks + 20·nBlocks + 5·nSplitTracks + nFullTracks.
// An angle with no block is invalid.
func scoreAngle(inner geo.Polygon, pivot geo.Point, deg int, width float64) (score int, valid bool) {
	rotated := analyzer.Calculate(inner.RotateAround(pivot, float64(deg)*math.Pi/180))
	tracks := center.GenerateParallelTracks(rotated, width)
	center.FindIntersections(rotated, tracks)
	nFull, nSplit := center.CountTracks(tracks)
	blocks := center.SplitCenterIntoBlocks(tracks)
	if len(blocks) == 0 {
		return 0, false
	}
	nSmall := center.CountSmallBlocks(blocks, smallBlockMinTracks)
	return weightSmallBlocks*nSmall +
		weightBlocks*len(blocks) +
		weightSplitTracks*nSplit +
		weightFullTracks*nFull, true
}

// RotationPivot is the bounding-box center, the pivot the course
// assembly uses so the evaluated frame and the working frame agree.
func RotationPivot(poly geo.Polygon) geo.Point {
	bb := poly.BoundingBox
	if bb.Min == bb.Max {
		bb = poly.ComputeBoundingBox()
	}
	return geo.MidPoint(bb.Min, bb.Max)
}

// FallbackDeg converts a dominant-direction angle in radians into the
// scan's degree domain [0°, 180°).
func FallbackDeg(dirRad float64) int {
	deg := int(math.Round(dirRad * 180 / math.Pi))
	deg %= 180
	if deg < 0 {
		deg += 180
	}
	return deg
}
