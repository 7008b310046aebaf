package world

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/potemkeen/self-driving-car/pkg/config"
	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/graph"
	"github.com/potemkeen/self-driving-car/pkg/layout"
	"github.com/potemkeen/self-driving-car/pkg/marking"
)

// cross builds a plus-shaped graph centered on the origin.
func cross(arm float64) *graph.Graph {
	g := graph.New()
	c := g.AddPoint(geo.Pt(0, 0))
	for _, p := range []geo.Point{geo.Pt(arm, 0), geo.Pt(-arm, 0), geo.Pt(0, arm), geo.Pt(0, -arm)} {
		g.TryAddSegment(c, g.AddPoint(p), false)
	}
	return g
}

func mustMarking(t *testing.T, kind marking.Kind, center geo.Point) *marking.Marking {
	t.Helper()
	m, err := marking.New(kind, center, geo.Pt(0, -1), 50, 50)
	require.NoError(t, err)
	return m
}

func TestGenerateSingleSegment(t *testing.T) {
	g := graph.FromSegments([]geo.Segment{geo.Seg(geo.Pt(0, 0), geo.Pt(100, 0))})
	p := layout.DefaultParams()
	p.RoadWidth = 20
	p.RoadRoundness = 0
	w := New(g, WithParams(p))

	report := w.Generate()
	require.NotNil(t, report)
	assert.True(t, report.Valid)
	require.Len(t, w.Envelopes, 1)
	assert.ElementsMatch(t, w.Envelopes[0].Poly.Edges(), w.RoadBorders)
	assert.Len(t, w.RoadBorders, 4)
	assert.NotEmpty(t, w.LaneGuides)
}

func TestGenerateParallelRoadsMerge(t *testing.T) {
	g := graph.FromSegments([]geo.Segment{
		geo.Seg(geo.Pt(0, 0), geo.Pt(100, 0)),
		geo.Seg(geo.Pt(0, 5), geo.Pt(100, 5)),
	})
	p := layout.DefaultParams()
	p.RoadWidth = 20
	p.RoadRoundness = 0
	w := New(g, WithParams(p))
	w.Generate()

	for _, b := range w.RoadBorders {
		if math.Abs(b.P1.Y-b.P2.Y) > 1e-6 {
			continue
		}
		outer := math.Abs(b.P1.Y+10) < 1e-6 || math.Abs(b.P1.Y-15) < 1e-6
		assert.True(t, outer, "seam at %v", b)
	}
}

func TestGenerateKeepsPlacedBuildings(t *testing.T) {
	w := New(cross(1000))
	manual := layout.NewBuilding(geo.NewPolygon(geo.Pt(5000, 5000), geo.Pt(5100, 5000), geo.Pt(5100, 5100)))
	w.AddBuilding(manual)

	w.Generate()
	first := len(w.Buildings)
	assert.Greater(t, first, 1)
	assert.Equal(t, manual.Base, w.Buildings[0].Base)

	w.Generate()
	assert.Len(t, w.Buildings, first, "generated buildings are replaced, not accumulated")
	assert.False(t, w.Buildings[0].Generated)
}

func TestGenerateIsReproducible(t *testing.T) {
	a := New(cross(1000), WithSeed(42))
	b := New(cross(1000), WithSeed(42))
	a.Generate()
	b.Generate()
	assert.Equal(t, a.Trees, b.Trees)
	assert.NotEmpty(t, a.Trees)
}

func TestNeedsRegeneration(t *testing.T) {
	g := cross(500)
	w := New(g)
	assert.True(t, w.NeedsRegeneration())
	w.Generate()
	assert.False(t, w.NeedsRegeneration())
	assert.Nil(t, w.Refresh())

	a, _ := g.TryAddPoint(geo.Pt(500, 500))
	b, _ := g.Locate(geo.Pt(500, 0))
	g.TryAddSegment(a, b, false)
	assert.True(t, w.NeedsRegeneration())
	assert.NotNil(t, w.Refresh())
	assert.False(t, w.NeedsRegeneration())
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.World.RoadWidth = 60
	cfg.World.Seed = 9
	cfg.Lights.FramesPerTick = 1
	w := FromConfig(nil, cfg)
	assert.Equal(t, 60.0, w.Params.RoadWidth)
	assert.Equal(t, uint64(9), w.Seed)
	assert.Equal(t, 1, w.Lights.FramesPerTick)
	assert.Zero(t, w.Graph.NumPoints())
}

func TestAddRemoveMarking(t *testing.T) {
	w := New(nil)
	a := mustMarking(t, marking.Stop, geo.Pt(0, 0))
	b := mustMarking(t, marking.Stop, geo.Pt(0, 0))
	w.AddMarking(a)
	w.AddMarking(b)
	assert.True(t, w.RemoveMarking(a))
	assert.False(t, w.RemoveMarking(a))
	assert.Equal(t, []*marking.Marking{b}, w.Markings)
}

func TestDispose(t *testing.T) {
	w := New(cross(1000))
	w.Generate()
	w.AddMarking(mustMarking(t, marking.Target, geo.Pt(0, 0)))
	w.Dispose()
	assert.Zero(t, w.Graph.NumPoints())
	assert.Empty(t, w.Buildings)
	assert.Empty(t, w.Markings)
	assert.Empty(t, w.Trees)
}

func TestCorridorToTarget(t *testing.T) {
	w := New(cross(1000))
	_, err := w.CorridorToTarget(geo.Pt(-1000, 0), false)
	assert.ErrorIs(t, err, ErrNoTarget)

	w.AddMarking(mustMarking(t, marking.Target, geo.Pt(0, 990)))
	c, err := w.CorridorToTarget(geo.Pt(-990, 0), true)
	require.NoError(t, err)
	assert.Same(t, c, w.Corridor)
	assert.InDelta(t, 2000, c.Length(), 1e-9)
	assert.Equal(t, geo.Pt(0, 1000), c.Target())
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := cross(1000.123456)
	w := New(g)
	w.AddMarking(mustMarking(t, marking.Stop, geo.Pt(10.00049, 20)))
	w.AddMarking(mustMarking(t, marking.Light, geo.Pt(30, 40)))
	w.Offset = geo.Pt(1.23456, 0)
	w.Generate()

	data, err := json.Marshal(w)
	require.NoError(t, err)
	for _, key := range []string{`"g"`, `"rw"`, `"rr"`, `"bw"`, `"bml"`, `"s"`, `"ts"`, `"e"`, `"rb"`, `"lg"`, `"b"`, `"t"`, `"m"`, `"z"`, `"o"`} {
		assert.Contains(t, string(data), key+":")
	}

	loaded, err := Load(data)
	require.NoError(t, err)
	assert.False(t, loaded.NeedsRegeneration())
	assert.Equal(t, w.Snapshot().Graph.Hash(), loaded.Graph.Hash())
	require.Len(t, loaded.Markings, 2)
	assert.Equal(t, marking.Stop, loaded.Markings[0].Kind)
	assert.Equal(t, geo.Pt(10, 20), loaded.Markings[0].Center)
	assert.Equal(t, 1.235, loaded.Offset.X)

	again, err := json.Marshal(loaded)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestLoadWithoutDerivedDataNeedsRegeneration(t *testing.T) {
	w := New(cross(100))
	snap := w.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)
	assert.True(t, loaded.NeedsRegeneration())
	assert.Equal(t, layout.DefaultParams(), loaded.Params)
}

func TestLoadEmptyAndMalformed(t *testing.T) {
	w, err := Load([]byte(`{}`))
	require.NoError(t, err)
	assert.Zero(t, w.Graph.NumPoints())
	assert.Equal(t, 1.0, w.Zoom)
	assert.False(t, w.NeedsRegeneration())

	_, err = Load([]byte(`{"g": 3`))
	assert.Error(t, err)
}
