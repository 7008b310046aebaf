package layout

import (
	"testing"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

func TestSingleSegmentBordersAreTheEnvelope(t *testing.T) {
	p := DefaultParams()
	p.RoadWidth = 20
	envs := RoadEnvelopes(straightRoad(100), p)
	if len(envs) != 1 {
		t.Fatalf("expected one envelope, got %d", len(envs))
	}
	borders := RoadBorders(envs)
	want := envs[0].Poly.Edges()
	if len(borders) != len(want) {
		t.Fatalf("expected %d border segments, got %d", len(want), len(borders))
	}
	for i := range want {
		if borders[i] != want[i] {
			t.Errorf("border %d = %v, want %v", i, borders[i], want[i])
		}
	}
}

func TestParallelRoadsShareOneOutline(t *testing.T) {
	p := DefaultParams()
	p.RoadWidth = 20
	p.RoadRoundness = 0
	segs := []geo.Segment{
		geo.Seg(geo.Pt(0, 0), geo.Pt(100, 0)),
		geo.Seg(geo.Pt(0, 5), geo.Pt(100, 5)),
	}
	for _, s := range RoadBorders(RoadEnvelopes(segs, p)) {
		mid := s.Midpoint()
		if mid.X > 1 && mid.X < 99 && mid.Y > -9 && mid.Y < 14 {
			t.Errorf("interior seam %v survived", s)
		}
	}
}

func TestLaneGuidesUseHalfWidth(t *testing.T) {
	p := DefaultParams()
	p.RoadRoundness = 0
	guides := LaneGuides(straightRoad(300), p)
	if len(guides) != 4 {
		t.Fatalf("expected a rectangle, got %d segments", len(guides))
	}
	for _, g := range guides {
		if g.Length() > 200 {
			if y := g.P1.Y; y < -25.001 || y > 25.001 || (y > -24.999 && y < 24.999) {
				t.Errorf("long guide at y=%.3f, want +/-25", y)
			}
		}
	}
}
