// Package sequencer orders the interior blocks for driving: it walks the
// inner headland from the spiral's exit point, enters each block at the
// corner the walk reaches first, lays the block's tracks in alternating
// directions with the skip-N permutation applied, and resumes the walk
// at the block's expected exit corner.
package sequencer

import (
	"github.com/CourseplayPathEditor/course-generator/pkg/center"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
	"github.com/CourseplayPathEditor/course-generator/pkg/reorder"
)

// FindTrackToNextBlock walks the inner headland from "from" toward "to"
// with the given step until it reaches a vertex whose edge index matches
// one of an uncovered block's corner intersections. The matched block is
// marked covered, its entry directions are set from the matched corner,
// and the walked sub-path plus the corner point is recorded on the block
// as TrackToThisBlock.
//
// The return values newFrom/newTo restart the walk at the block's
// expected exit corner. found is false when the full walk encounters no
// uncovered block, which ends the sequencing loop.
func FindTrackToNextBlock(blocks []*center.Block, headland geo.Polygon, from, to, step int) (blk *center.Block, newFrom, newTo int, found bool) {
	n := headland.Len()
	if n == 0 {
		return nil, 0, 0, false
	}

	var walked []geo.Point
	geo.PolygonIterator(headland, from, to, step, func(index int, v geo.Vertex) bool {
		walked = append(walked, v.Point)
		for _, b := range blocks {
			if b.Covered {
				continue
			}
			corner, entry, ok := matchCorner(b, index)
			if !ok {
				continue
			}
			b.Covered = true
			b.BottomToTop = entry.bottomToTop
			b.LeftToRight = entry.leftToRight
			b.TrackToThisBlock = append(walked, corner.Point)
			blk = b
			return false
		}
		return true
	})
	if blk == nil {
		return nil, 0, 0, false
	}

	exit := exitCorner(blk)
	newFrom = exit.EdgeIndex
	newTo = geo.GetPolygonIndex(n, newFrom-step)
	return blk, newFrom, newTo, true
}

type entryDirections struct {
	bottomToTop, leftToRight bool
}

// matchCorner tests the four corners in a fixed order so a narrow block
// whose corners share an edge resolves deterministically.
func matchCorner(b *center.Block, edgeIndex int) (center.Intersection, entryDirections, bool) {
	switch edgeIndex {
	case b.BottomLeft.EdgeIndex:
		return b.BottomLeft, entryDirections{bottomToTop: true, leftToRight: true}, true
	case b.BottomRight.EdgeIndex:
		return b.BottomRight, entryDirections{bottomToTop: true, leftToRight: false}, true
	case b.TopLeft.EdgeIndex:
		return b.TopLeft, entryDirections{bottomToTop: false, leftToRight: true}, true
	case b.TopRight.EdgeIndex:
		return b.TopRight, entryDirections{bottomToTop: false, leftToRight: false}, true
	}
	return center.Intersection{}, entryDirections{}, false
}

// exitCorner predicts where the vehicle leaves the block: on the
// opposite top/bottom side from the entry, and on the same left/right
// side when the track count is even (alternating direction lands the
// last track back on the entry side), the opposite one when odd.
func exitCorner(b *center.Block) center.Intersection {
	exitTop := b.BottomToTop
	exitLeft := b.LeftToRight == (len(b.Tracks)%2 == 0)
	switch {
	case exitTop && exitLeft:
		return b.TopLeft
	case exitTop && !exitLeft:
		return b.TopRight
	case !exitTop && exitLeft:
		return b.BottomLeft
	default:
		return b.BottomRight
	}
}

// LinkParallelTracks lays out a block's tracks as one drivable vertex
// sequence: track order honors BottomToTop and the skip-N permutation,
// waypoint order alternates direction (the first reversal falls on the
// second track when entering from the left, on the first otherwise),
// and turn markers bracket every inter-track turn. Tracks that received
// no waypoints are skipped. firstTrackNumber seeds the Track tag;
// nextTrackNumber continues the numbering for the following block.
func LinkParallelTracks(blk *center.Block, nSkip, firstTrackNumber int) (result []geo.Vertex, nextTrackNumber int) {
	tracks := blk.Tracks
	if !blk.BottomToTop {
		tracks = geo.Reverse(tracks)
	}
	tracks = reorder.AlternateFieldwork(tracks, nSkip)

	var withWaypoints []*center.Track
	for _, tr := range tracks {
		if len(tr.Waypoints) > 0 {
			withWaypoints = append(withWaypoints, tr)
		}
	}

	trackNumber := firstTrackNumber
	for ti, tr := range withWaypoints {
		wps := tr.Waypoints
		reversed := ti%2 == 1
		if !blk.LeftToRight {
			reversed = !reversed
		}
		if reversed {
			wps = geo.Reverse(wps)
		}
		for wi, p := range wps {
			v := geo.Vertex{Point: p, Track: trackNumber}
			if wi == 0 && ti > 0 {
				v.TurnEnd = true
			}
			if wi == len(wps)-1 && ti < len(withWaypoints)-1 {
				v.TurnStart = true
			}
			result = append(result, v)
		}
		trackNumber++
	}
	return result, trackNumber
}
