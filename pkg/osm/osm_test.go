package osm

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "version": 0.6,
  "elements": [
    {"type": "node", "id": 1, "lat": 1.000, "lon": 1.000},
    {"type": "node", "id": 2, "lat": 1.001, "lon": 1.000},
    {"type": "node", "id": 3, "lat": 1.000, "lon": 1.001},
    {"type": "node", "id": 4, "lat": 1.0005, "lon": 1.0005},
    {"type": "node", "id": 5, "lat": 1.0002, "lon": 1.0002},
    {"type": "node", "id": 6, "lat": 1.0002, "lon": 1.0004},
    {"type": "node", "id": 7, "lat": 1.0004, "lon": 1.0004},
    {"type": "way", "id": 10, "nodes": [1, 2], "tags": {"highway": "residential", "oneway": "yes"}},
    {"type": "way", "id": 11, "nodes": [1, 3], "tags": {"highway": "service", "lanes": "1"}},
    {"type": "way", "id": 12, "nodes": [3, 2], "tags": {"highway": "primary"}},
    {"type": "way", "id": 13, "nodes": [5, 6, 7, 5], "tags": {"building": "yes", "building:levels": "3"}}
  ]
}`

func TestParseProjection(t *testing.T) {
	res, err := Parse([]byte(sample))
	require.NoError(t, err)

	wantHeight := 0.001 * 111000 * 10
	wantWidth := wantHeight * math.Cos(1.001*math.Pi/180)
	assert.InDelta(t, wantHeight, res.Height, 1e-6)
	assert.InDelta(t, wantWidth, res.Width, 1e-6)
	assert.InDelta(t, wantWidth/2, res.Center.X, 1e-6)
	assert.InDelta(t, wantHeight/2, res.Center.Y, 1e-6)

	pts := res.Graph.Points()
	require.Len(t, pts, 3, "only road nodes are kept")
	assert.Equal(t, int64(1), pts[0].ID)
	assert.InDelta(t, 0, pts[0].X, 1e-6)
	assert.InDelta(t, wantHeight, pts[0].Y, 1e-6, "south is down")
	assert.InDelta(t, 0, pts[1].Y, 1e-6)
	assert.InDelta(t, wantWidth, pts[2].X, 1e-6)
}

func TestParseSegments(t *testing.T) {
	res, err := Parse([]byte(sample))
	require.NoError(t, err)

	segs := res.Graph.Segments()
	require.Len(t, segs, 3)
	assert.True(t, segs[0].OneWay, "oneway=yes")
	assert.True(t, segs[1].OneWay, "lanes=1")
	assert.False(t, segs[2].OneWay)
	assert.Equal(t, int64(1), segs[0].P1.ID)
	assert.Equal(t, int64(1), segs[1].P1.ID, "shared node resolves to one point")
	h, ok := res.Graph.Locate(segs[0].P1)
	require.True(t, ok)
	assert.Equal(t, 2, res.Graph.Degree(h))
}

func TestParseBuildings(t *testing.T) {
	res, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Len(t, res.Buildings, 1)
	b := res.Buildings[0]
	assert.Equal(t, 4, b.Base.Len())
	assert.Equal(t, 25+50*3.0, b.Height)
	assert.False(t, b.Generated)
}

func TestLevelsDefault(t *testing.T) {
	res, err := Parse([]byte(`{"elements": [
		{"type": "node", "id": 1, "lat": 0, "lon": 0},
		{"type": "node", "id": 2, "lat": 1, "lon": 0},
		{"type": "node", "id": 3, "lat": 1, "lon": 1},
		{"type": "way", "id": 9, "nodes": [1, 2, 3], "tags": {"building": "house", "building:levels": "many"}}
	]}`))
	require.NoError(t, err)
	require.Len(t, res.Buildings, 1)
	assert.Equal(t, 75.0, res.Buildings[0].Height)
	assert.Zero(t, res.Graph.NumPoints())
}

func TestDegenerateBoundIsZeroSize(t *testing.T) {
	res, err := Parse([]byte(`{"elements": [
		{"type": "node", "id": 1, "lat": 5, "lon": 5},
		{"type": "node", "id": 2, "lat": 5, "lon": 5},
		{"type": "way", "id": 3, "nodes": [1, 2], "tags": {"highway": "path"}}
	]}`))
	require.NoError(t, err)
	assert.Zero(t, res.Width)
	assert.Zero(t, res.Height)
	assert.Equal(t, 2, res.Graph.NumPoints())
	assert.Zero(t, res.Graph.NumSegments(), "zero-length segment rejected")
	for _, p := range res.Graph.Points() {
		assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y))
	}
}

func TestNoNodes(t *testing.T) {
	_, err := Parse([]byte(`{"elements": []}`))
	assert.ErrorIs(t, err, ErrNoNodes)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	res, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Graph.NumPoints())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
