package sequencer

import (
	"testing"

	"github.com/CourseplayPathEditor/course-generator/pkg/analyzer"
	"github.com/CourseplayPathEditor/course-generator/pkg/center"
	"github.com/CourseplayPathEditor/course-generator/pkg/geo"
)

// innerSquare builds an analyzed 70x70 inner headland with its scan
// lines, intersections, and blocks, the state the sequencer starts from.
func innerSquare(t *testing.T) (geo.Polygon, []*center.Block) {
	t.Helper()
	poly := analyzer.Calculate(geo.NewPolygon(
		geo.Pt(15, 15), geo.Pt(85, 15), geo.Pt(85, 85), geo.Pt(15, 85),
	))
	tracks := center.GenerateParallelTracks(poly, 10)
	center.FindIntersections(poly, tracks)
	blocks := center.SplitCenterIntoBlocks(tracks)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block from a convex square, got %d", len(blocks))
	}
	return poly, blocks
}

func TestFindTrackToNextBlockEntersAtWalkedCorner(t *testing.T) {
	poly, blocks := innerSquare(t)

	blk, newFrom, newTo, found := FindTrackToNextBlock(blocks, poly, 1, 4, 1)
	if !found {
		t.Fatal("expected the walk to reach a block corner")
	}
	if !blk.Covered {
		t.Error("matched block not marked covered")
	}
	if !blk.BottomToTop {
		t.Error("a bottom corner entry must set BottomToTop")
	}
	if len(blk.TrackToThisBlock) == 0 {
		t.Error("expected a recorded connecting sub-path")
	}
	last := blk.TrackToThisBlock[len(blk.TrackToThisBlock)-1]
	if last != blk.BottomLeft.Point && last != blk.BottomRight.Point {
		t.Errorf("connecting path must end at the entry corner, got %+v", last)
	}
	if newFrom < 1 || newFrom > poly.Len() || newTo < 1 || newTo > poly.Len() {
		t.Errorf("exit restart indices out of range: from=%d to=%d", newFrom, newTo)
	}
}

func TestFindTrackToNextBlockNoUncoveredBlocks(t *testing.T) {
	poly, blocks := innerSquare(t)
	blocks[0].Covered = true
	if _, _, _, found := FindTrackToNextBlock(blocks, poly, 1, 4, 1); found {
		t.Fatal("expected no block to be found once all are covered")
	}
}

func TestLinkParallelTracksAlternatesAndMarksTurns(t *testing.T) {
	poly, blocks := innerSquare(t)
	blk, _, _, found := FindTrackToNextBlock(blocks, poly, 1, 4, 1)
	if !found {
		t.Fatal("no block found")
	}
	center.AddWaypointsToTracks(blk.Tracks, 10, 0, 5)

	result, next := LinkParallelTracks(blk, 0, 0)
	if next != len(blk.Tracks) {
		t.Fatalf("nextTrackNumber = %d, want %d", next, len(blk.Tracks))
	}

	byTrack := map[int][]geo.Vertex{}
	for _, v := range result {
		byTrack[v.Track] = append(byTrack[v.Track], v)
	}
	if len(byTrack) != len(blk.Tracks) {
		t.Fatalf("linked %d tracks, want %d", len(byTrack), len(blk.Tracks))
	}

	var prevDir float64
	for tn := 0; tn < next; tn++ {
		wps := byTrack[tn]
		dir := wps[len(wps)-1].X - wps[0].X
		if tn > 0 && dir*prevDir >= 0 {
			t.Errorf("track %d does not alternate direction", tn)
		}
		prevDir = dir
	}

	starts, ends := 0, 0
	for _, v := range result {
		if v.TurnStart {
			starts++
		}
		if v.TurnEnd {
			ends++
		}
	}
	want := len(blk.Tracks) - 1
	if starts != want || ends != want {
		t.Errorf("turn markers = %d starts / %d ends, want %d each", starts, ends, want)
	}
	if result[0].TurnEnd {
		t.Error("first waypoint of the first track must not be a turn end")
	}
	if result[len(result)-1].TurnStart {
		t.Error("last waypoint of the last track must not be a turn start")
	}
}

func TestLinkParallelTracksTopEntryReversesTrackOrder(t *testing.T) {
	poly, blocks := innerSquare(t)
	blk, _, _, found := FindTrackToNextBlock(blocks, poly, 1, 4, 1)
	if !found {
		t.Fatal("no block found")
	}
	center.AddWaypointsToTracks(blk.Tracks, 10, 0, 5)

	blk.BottomToTop = false
	result, _ := LinkParallelTracks(blk, 0, 0)
	topY := blk.Tracks[len(blk.Tracks)-1].From.Y
	if result[0].Y != topY {
		t.Errorf("top entry must start on the top track (y=%f), got y=%f", topY, result[0].Y)
	}
}

func TestLinkParallelTracksSkipPatternCoversAllTracks(t *testing.T) {
	poly, blocks := innerSquare(t)
	blk, _, _, found := FindTrackToNextBlock(blocks, poly, 1, 4, 1)
	if !found {
		t.Fatal("no block found")
	}
	center.AddWaypointsToTracks(blk.Tracks, 10, 0, 5)

	result, next := LinkParallelTracks(blk, 2, 0)
	if next != len(blk.Tracks) {
		t.Fatalf("skip pattern dropped tracks: %d of %d", next, len(blk.Tracks))
	}
	levels := map[float64]bool{}
	for _, v := range result {
		levels[v.Y] = true
	}
	if len(levels) != len(blk.Tracks) {
		t.Errorf("skip pattern visited %d of %d y levels", len(levels), len(blk.Tracks))
	}
}
