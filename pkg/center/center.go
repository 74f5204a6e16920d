// Package center generates the interior parallel-track fill and splits it
// into connected blocks.
package center

import (
	"math"
	"sort"

	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

// DefaultWaypointSpacing is the default distance between emitted
// waypoints, meters.
const DefaultWaypointSpacing = 5.0

// Intersection is one scan-line/polygon-edge crossing, keeping a back
// reference to the source edge by index only.
type Intersection struct {
	Point     geo.Point
	EdgeIndex int
}

// Track is a horizontal scan line in the working (rotated) frame.
type Track struct {
	From, To      geo.Point
	Intersections []Intersection
	Waypoints     []geo.Point
}

// GenerateParallelTracks emits horizontal scan lines across poly's
// bounding box at y = minY + width/2 + k*width.
func GenerateParallelTracks(poly geo.Polygon, width float64) []*Track {
	bb := poly.BoundingBox
	if bb.Min == bb.Max {
		bb = poly.ComputeBoundingBox()
	}
	var tracks []*Track
	if width <= 0 {
		return tracks
	}
	for y := bb.Min.Y + width/2; y <= bb.Max.Y; y += width {
		tracks = append(tracks, &Track{From: geo.Pt(bb.Min.X, y), To: geo.Pt(bb.Max.X, y)})
	}
	return tracks
}

// FindIntersections walks poly's edges once per track, recording every
// crossing with the track's y in ascending-x order.
func FindIntersections(poly geo.Polygon, tracks []*Track) {
	n := poly.Len()
	for _, tr := range tracks {
		y := tr.From.Y
		var ins []Intersection
		for i := 1; i <= n; i++ {
			from := poly.At(i).Point
			to := poly.At(geo.GetPolygonIndex(n, i+1)).Point
			if from.Y == to.Y {
				continue
			}
			lo, hi := from.Y, to.Y
			if lo > hi {
				lo, hi = hi, lo
			}
			if y < lo || y > hi {
				continue
			}
			t := (y - from.Y) / (to.Y - from.Y)
			x := from.X + t*(to.X-from.X)
			ins = append(ins, Intersection{Point: geo.Pt(x, y), EdgeIndex: i})
		}
		sort.Slice(ins, func(a, b int) bool { return ins[a].Point.X < ins[b].Point.X })
		tr.Intersections = ins
	}
}

// AddWaypointsToTracks discretizes every track with at least 2
// intersections into waypoints spaced spacing apart, inset by width/2 and
// adjusted by extendTracks. Tracks that would invert
// (newTo <= newFrom) are skipped, left without waypoints.
func AddWaypointsToTracks(tracks []*Track, width, extendTracks, spacing float64) {
	if spacing <= 0 {
		spacing = DefaultWaypointSpacing
	}
	for _, tr := range tracks {
		if len(tr.Intersections) < 2 {
			continue
		}
		i1, i2 := tr.Intersections[0], tr.Intersections[1]
		minX := math.Min(i1.Point.X, i2.Point.X)
		maxX := math.Max(i1.Point.X, i2.Point.X)
		newFrom := minX + width/2 - extendTracks
		newTo := maxX - width/2 + extendTracks
		if newTo <= newFrom {
			continue
		}
		y := tr.From.Y
		var wps []geo.Point
		for x := newFrom; x < newTo; x += spacing {
			wps = append(wps, geo.Pt(x, y))
		}
		if len(wps) == 0 || newTo-wps[len(wps)-1].X > 0.25*spacing {
			wps = append(wps, geo.Pt(newTo, y))
		}
		tr.Waypoints = wps
	}
}

// CountTracks classifies generated scan lines: a track with exactly two
// intersections yields one uninterrupted interior pass ("full"); one with
// more than two crosses the interior edge multiple times and contributes
// more than one block slice ("split"). Feeds the angle selector's
// score.
func CountTracks(tracks []*Track) (nFull, nSplit int) {
	for _, t := range tracks {
		switch {
		case len(t.Intersections) == 2:
			nFull++
		case len(t.Intersections) > 2:
			nSplit++
		}
	}
	return nFull, nSplit
}

// Block is a maximal run of consecutive track slices, each x-overlapping
// the one before it, workable without re-entering the headland.
type Block struct {
	Tracks                                     []*Track
	BottomLeft, BottomRight, TopLeft, TopRight Intersection
	Covered                                    bool
	BottomToTop, LeftToRight                   bool
	TrackToThisBlock                           []geo.Point
}

// SplitCenterIntoBlocks repeatedly pulls the two leftmost intersections
// off every track that has at least two remaining, groups the resulting
// slices into maximal x-overlapping runs, and repeats until no track
// has any pair left.
func SplitCenterIntoBlocks(tracks []*Track) []*Block {
	type state struct {
		y         float64
		remaining []Intersection
	}
	states := make([]*state, 0, len(tracks))
	for _, t := range tracks {
		if len(t.Intersections) < 2 {
			continue
		}
		states = append(states, &state{y: t.From.Y, remaining: append([]Intersection(nil), t.Intersections...)})
	}

	var blocks []*Block
	for {
		var pending []*Track
		for _, st := range states {
			if len(st.remaining) < 2 {
				continue
			}
			left, right := st.remaining[0], st.remaining[1]
			st.remaining = st.remaining[2:]
			pending = append(pending, &Track{
				From:          geo.Pt(left.Point.X, st.y),
				To:            geo.Pt(right.Point.X, st.y),
				Intersections: []Intersection{left, right},
			})
		}
		if len(pending) == 0 {
			break
		}

		var block *Block
		var prev *Track
		for _, tr := range pending {
			if block == nil {
				block = &Block{Tracks: []*Track{tr}}
				prev = tr
				continue
			}
			if overlaps(prev, tr) {
				block.Tracks = append(block.Tracks, tr)
				prev = tr
				continue
			}
			finalizeCorners(block)
			blocks = append(blocks, block)
			block = &Block{Tracks: []*Track{tr}}
			prev = tr
		}
		if block != nil {
			finalizeCorners(block)
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// CountSmallBlocks counts blocks with fewer than minTracks contained
// tracks.
func CountSmallBlocks(blocks []*Block, minTracks int) int {
	n := 0
	for _, b := range blocks {
		if len(b.Tracks) < minTracks {
			n++
		}
	}
	return n
}

func finalizeCorners(b *Block) {
	if len(b.Tracks) == 0 {
		return
	}
	first := b.Tracks[0]
	last := b.Tracks[len(b.Tracks)-1]
	b.BottomLeft = first.Intersections[0]
	b.BottomRight = first.Intersections[1]
	b.TopLeft = last.Intersections[0]
	b.TopRight = last.Intersections[1]
}

// overlaps reports whether two tracks' x-ranges intersect.
func overlaps(a, b *Track) bool {
	aMin, aMax := a.From.X, a.To.X
	if aMin > aMax {
		aMin, aMax = aMax, aMin
	}
	bMin, bMax := b.From.X, b.To.X
	if bMin > bMax {
		bMin, bMax = bMax, bMin
	}
	return aMin <= bMax && bMin <= aMax
}
