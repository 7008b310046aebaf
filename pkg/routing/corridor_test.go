package routing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/graph"
)

// lGraph is an L-shaped road (0,0)-(100,0)-(100,100) with a spur at (300,0).
func lGraph() *graph.Graph {
	return graph.FromSegments([]geo.Segment{
		geo.Seg(geo.Pt(0, 0), geo.Pt(100, 0)),
		geo.Seg(geo.Pt(100, 0), geo.Pt(100, 100)),
		geo.Seg(geo.Pt(100, 0), geo.Pt(300, 0)),
	})
}

func TestGenerateCorridorFollowsShortestPath(t *testing.T) {
	c, err := GenerateCorridor(lGraph(), geo.Pt(-5, 3), geo.Pt(110, 95), Options{RoadWidth: 20})
	require.NoError(t, err)

	assert.Equal(t, []geo.Segment{
		geo.Seg(geo.Pt(0, 0), geo.Pt(100, 0)),
		geo.Seg(geo.Pt(100, 0), geo.Pt(100, 100)),
	}, c.Skeleton)
	assert.InDelta(t, 200, c.Length(), 1e-9)
	assert.NotEmpty(t, c.Borders)
	assert.Equal(t, geo.Pt(100, 100), c.Target())

	// The spur is not part of the corridor.
	for _, b := range c.Borders {
		assert.Less(t, b.Midpoint().X, 200.0)
	}
}

func TestGenerateCorridorExtendEnd(t *testing.T) {
	g := graph.FromSegments([]geo.Segment{geo.Seg(geo.Pt(0, 0), geo.Pt(100, 0))})
	plain, err := GenerateCorridor(g, geo.Pt(0, 0), geo.Pt(100, 0), Options{RoadWidth: 20})
	require.NoError(t, err)
	extended, err := GenerateCorridor(g, geo.Pt(0, 0), geo.Pt(100, 0), Options{RoadWidth: 20, ExtendEnd: true})
	require.NoError(t, err)

	maxX := func(segs []geo.Segment) float64 {
		m := 0.0
		for _, s := range segs {
			m = max(m, s.P1.X, s.P2.X)
		}
		return m
	}
	assert.InDelta(t, 100, maxX(plain.Borders), 1e-9)
	assert.InDelta(t, 140, maxX(extended.Borders), 1e-9)
	assert.Equal(t, plain.Skeleton, extended.Skeleton)
}

func TestGenerateCorridorNoRoute(t *testing.T) {
	_, err := GenerateCorridor(graph.New(), geo.Pt(0, 0), geo.Pt(1, 1), Options{RoadWidth: 20})
	assert.True(t, errors.Is(err, ErrNoRoute))

	g := graph.FromSegments([]geo.Segment{
		geo.Seg(geo.Pt(0, 0), geo.Pt(10, 0)),
		geo.Seg(geo.Pt(500, 0), geo.Pt(510, 0)),
	})
	_, err = GenerateCorridor(g, geo.Pt(0, 0), geo.Pt(510, 0), Options{RoadWidth: 20})
	assert.ErrorIs(t, err, ErrNoRoute)

	_, err = GenerateCorridor(g, geo.Pt(0, 0), geo.Pt(1, 0), Options{RoadWidth: 20})
	assert.ErrorIs(t, err, ErrNoRoute, "start and target on the same point")
}

func TestGenerateCorridorOneWay(t *testing.T) {
	g := graph.New()
	a := g.AddPoint(geo.Pt(0, 0))
	b := g.AddPoint(geo.Pt(100, 0))
	g.TryAddSegment(a, b, true)

	_, err := GenerateCorridor(g, geo.Pt(0, 0), geo.Pt(100, 0), Options{RoadWidth: 20})
	require.NoError(t, err)
	_, err = GenerateCorridor(g, geo.Pt(100, 0), geo.Pt(0, 0), Options{RoadWidth: 20})
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestProgress(t *testing.T) {
	c, err := GenerateCorridor(lGraph(), geo.Pt(0, 0), geo.Pt(100, 100), Options{RoadWidth: 20})
	require.NoError(t, err)

	assert.InDelta(t, 0, c.Progress(geo.Pt(-30, 2)), 1e-9, "clamped before the start")
	assert.InDelta(t, 0.25, c.Progress(geo.Pt(50, 4)), 1e-9)
	assert.InDelta(t, 0.75, c.Progress(geo.Pt(96, 50)), 1e-9)
	assert.InDelta(t, 1, c.Progress(geo.Pt(100, 180)), 1e-9, "clamped past the end")
}

func TestProgressEmptyCorridor(t *testing.T) {
	c := &Corridor{}
	assert.Zero(t, c.Progress(geo.Pt(1, 1)))
	assert.Zero(t, c.Length())
	assert.Equal(t, geo.Point{}, c.Target())
}
