package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/layout"
	"github.com/potemkeen/self-driving-car/pkg/marking"
)

type call struct {
	op    string
	pts   []geo.Point
	text  string
	style Style
	alpha float64
}

type fakeSurface struct {
	calls []call
	alpha float64
}

func (f *fakeSurface) Polygon(pts []geo.Point, s Style) {
	f.calls = append(f.calls, call{op: "polygon", pts: pts, style: s, alpha: f.alpha})
}
func (f *fakeSurface) Line(a, b geo.Point, s Style) {
	f.calls = append(f.calls, call{op: "line", pts: []geo.Point{a, b}, style: s, alpha: f.alpha})
}
func (f *fakeSurface) Circle(c geo.Point, r float64, s Style) {
	f.calls = append(f.calls, call{op: "circle", pts: []geo.Point{c}, style: s, alpha: f.alpha})
}
func (f *fakeSurface) Text(at geo.Point, text string, s Style) {
	f.calls = append(f.calls, call{op: "text", pts: []geo.Point{at}, text: text, style: s, alpha: f.alpha})
}
func (f *fakeSurface) SetAlpha(a float64) { f.alpha = a }

func (f *fakeSurface) ops() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.op
	}
	return out
}

func TestFake3DLeansAwayFromViewer(t *testing.T) {
	view := geo.Pt(0, 0)
	near := Fake3D(geo.Pt(10, 0), view, 100)
	far := Fake3D(geo.Pt(1000, 0), view, 100)

	assert.Greater(t, near.X, 10.0)
	assert.InDelta(t, 0, near.Y, 1e-9)
	assert.Greater(t, far.X-1000, near.X-10, "farther items lean more")
	assert.Less(t, far.X-1000, 100.0)
}

func TestFake3DAtViewPointIsStable(t *testing.T) {
	p := Fake3D(geo.Pt(5, 5), geo.Pt(5, 5), 100)
	assert.False(t, math.IsNaN(p.X))
	assert.Equal(t, geo.Pt(5, 5), p)
}

func TestPolygonSkipsDegenerate(t *testing.T) {
	f := &fakeSurface{}
	Polygon(f, geo.NewPolygon(geo.Pt(0, 0), geo.Pt(1, 1)), PolygonStyle)
	assert.Empty(t, f.calls)
}

func TestBuildingDrawsBaseWallsRoof(t *testing.T) {
	f := &fakeSurface{}
	b := layout.NewBuilding(geo.NewPolygon(geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10), geo.Pt(0, 10)))
	Building(f, b, geo.Pt(-100, 5))

	require.Len(t, f.calls, 6)
	assert.Equal(t, b.Base.Vertices, f.calls[0].pts)
	roof := f.calls[5]
	assert.Equal(t, "#D44", roof.style.Fill)
	assert.Greater(t, roof.pts[0].X, 0.0)
}

func TestTreeDrawsLevels(t *testing.T) {
	f := &fakeSurface{}
	Tree(f, layout.NewTree(geo.Pt(0, 0), 160), geo.Pt(100, 100))
	assert.Len(t, f.calls, treeLevels)
}

func TestMarkingVisuals(t *testing.T) {
	cases := []struct {
		kind marking.Kind
		ops  []string
	}{
		{marking.Crossing, []string{"line"}},
		{marking.Stop, []string{"line", "text"}},
		{marking.Yield, []string{"line", "text"}},
		{marking.Parking, []string{"line", "line", "text"}},
		{marking.Light, []string{"polygon", "circle", "circle", "circle"}},
		{marking.Target, []string{"circle", "circle", "circle"}},
		{marking.Start, []string{"polygon"}},
		{marking.Generic, []string{"polygon"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			m, err := marking.New(tc.kind, geo.Pt(0, 0), geo.Pt(0, 1), 50, 50)
			require.NoError(t, err)
			f := &fakeSurface{}
			Marking(f, m)
			assert.Equal(t, tc.ops, f.ops())
		})
	}
}

func TestLightLampsFollowState(t *testing.T) {
	m, err := marking.New(marking.Light, geo.Pt(0, 0), geo.Pt(0, 1), 50, marking.LightHeight)
	require.NoError(t, err)

	m.State = marking.Yellow
	f := &fakeSurface{}
	Marking(f, m)
	lit := 0
	for _, c := range f.calls[1:] {
		if c.style.Fill == "#FF0" {
			lit++
		}
		assert.NotEqual(t, "#0F0", c.style.Fill)
	}
	assert.Equal(t, 1, lit)

	m.State = marking.Off
	f = &fakeSurface{}
	Marking(f, m)
	for _, c := range f.calls[1:] {
		assert.NotContains(t, []string{"#0F0", "#FF0", "#F00"}, c.style.Fill)
	}
}

func TestViewportProject(t *testing.T) {
	v := Viewport{Width: 200, Height: 100, Center: geo.Pt(50, 50), Zoom: 2}
	x, y := v.Project(geo.Pt(50, 50))
	assert.Equal(t, 100, x)
	assert.Equal(t, 50, y)
	x, y = v.Project(geo.Pt(60, 40))
	assert.Equal(t, 120, x)
	assert.Equal(t, 30, y)
}

func TestSVGSurfaceWritesDocument(t *testing.T) {
	var buf bytes.Buffer
	s := NewSVGSurface(&buf, Viewport{Width: 100, Height: 100, Zoom: 1})
	s.Polygon([]geo.Point{geo.Pt(0, 0), geo.Pt(10, 0), geo.Pt(10, 10)}, RoadStyle)
	s.SetAlpha(0.2)
	s.Line(geo.Pt(0, 0), geo.Pt(5, 5), SkeletonStyle)
	s.Text(geo.Pt(0, 0), "STOP", Style{Fill: "white", FontSize: 10})
	s.Close()

	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	assert.Contains(t, out, "<polygon")
	assert.Contains(t, out, "fill:#BBB")
	assert.Contains(t, out, "stroke-dasharray:10,10")
	assert.Contains(t, out, "opacity:0.2")
	assert.Contains(t, out, ">STOP<")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}
