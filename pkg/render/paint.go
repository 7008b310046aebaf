package render

import (
	"math"
	"sort"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/layout"
	"github.com/potemkeen/self-driving-car/pkg/marking"
)

// Segment strokes a segment.
func Segment(s Surface, seg geo.Segment, st Style) {
	s.Line(seg.P1, seg.P2, st)
}

// Polygon paints a polygon. Polygons with fewer than three vertices are
// skipped.
func Polygon(s Surface, p geo.Polygon, st Style) {
	if p.Len() < 3 {
		return
	}
	s.Polygon(p.Vertices, st)
}

// Car paints a car body.
func Car(s Surface, body geo.Polygon, color string) {
	Polygon(s, body, Style{Fill: color, Stroke: color, LineWidth: 1})
}

// Fake3D lifts p away from the viewer by height, scaled so that items far
// from viewPoint lean more.
func Fake3D(p, viewPoint geo.Point, height float64) geo.Point {
	dir := p.Sub(viewPoint).Normalize()
	dist := p.Distance(viewPoint)
	scaler := math.Atan(dist/300) / (math.Pi / 2)
	return p.Add(dir.Scale(height * scaler))
}

// Building paints a footprint with walls and a roof outline projected away
// from viewPoint. Walls are drawn farthest first.
func Building(s Surface, b layout.Building, viewPoint geo.Point) {
	if b.Base.Len() < 3 {
		return
	}
	top := make([]geo.Point, b.Base.Len())
	for i, p := range b.Base.Vertices {
		top[i] = Fake3D(p, viewPoint, b.Height*0.6)
	}

	type wall struct {
		pts  []geo.Point
		dist float64
	}
	n := b.Base.Len()
	walls := make([]wall, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pts := []geo.Point{b.Base.Vertices[i], b.Base.Vertices[j], top[j], top[i]}
		edge := geo.Seg(b.Base.Vertices[i], b.Base.Vertices[j])
		walls = append(walls, wall{pts: pts, dist: edge.DistanceToPoint(viewPoint)})
	}
	sort.SliceStable(walls, func(i, k int) bool { return walls[i].dist > walls[k].dist })

	wallStyle := Style{Fill: "white", Stroke: "#AAA", LineWidth: 2}
	Polygon(s, b.Base, wallStyle)
	for _, w := range walls {
		s.Polygon(w.pts, wallStyle)
	}
	s.Polygon(top, Style{Fill: "#D44", Stroke: "#C44", LineWidth: 4})
}

// treeLevels is the number of canopy layers stacked by Tree.
const treeLevels = 7

// Tree paints stacked canopy layers that shrink and lighten towards the top.
func Tree(s Surface, t layout.Tree, viewPoint geo.Point) {
	top := Fake3D(t.Center, viewPoint, t.Height)
	for level := 0; level < treeLevels; level++ {
		f := float64(level) / float64(treeLevels-1)
		p := t.Center.Lerp(top, f)
		size := t.Size + (40-t.Size)*f
		g := int(200 * f)
		color := rgb(30, 50+g/2, 70)
		canopy := geo.NoisyCircle(p, size/2, 16)
		Polygon(s, canopy, Style{Fill: color, Stroke: "rgba(0,0,0,0)"})
	}
}

// Marking paints a marking according to its kind.
func Marking(s Surface, m *marking.Marking) {
	a := m.Direction.Angle()
	perp := geo.Seg(
		m.Center.Translate(a+math.Pi/2, m.Width/2),
		m.Center.Translate(a-math.Pi/2, m.Width/2),
	)
	switch m.Kind {
	case marking.Crossing:
		s.Line(perp.P1, perp.P2, Style{Stroke: "white", LineWidth: m.Height, Dash: []float64{11, 11}})
	case marking.Stop, marking.Yield, marking.Parking:
		for _, b := range m.Borders() {
			Segment(s, b, Style{Stroke: "white", LineWidth: 5})
		}
		s.Text(m.Center, label(m.Kind), Style{Fill: "white", FontSize: m.Height * 0.3})
	case marking.Light:
		paintLight(s, m, perp)
	case marking.Target:
		for i, r := range []float64{m.Width / 2, m.Width / 3, m.Width / 6} {
			fill := "red"
			if i%2 == 1 {
				fill = "white"
			}
			s.Circle(m.Center, r, Style{Fill: fill})
		}
	case marking.Start:
		Polygon(s, m.Poly, Style{Stroke: "blue", LineWidth: 3, Dash: []float64{6, 6}})
	default:
		Polygon(s, m.Poly, PolygonStyle)
	}
}

func label(k marking.Kind) string {
	switch k {
	case marking.Stop:
		return "STOP"
	case marking.Yield:
		return "YIELD"
	case marking.Parking:
		return "P"
	}
	return ""
}

// paintLight draws three lamps across the road, lighting the active one.
func paintLight(s Surface, m *marking.Marking, perp geo.Segment) {
	Polygon(s, m.Poly, Style{Fill: "#222"})
	lamps := []struct {
		state marking.LightState
		t     float64
		on    string
		off   string
	}{
		{marking.Green, 0.2, "#0F0", "#030"},
		{marking.Yellow, 0.5, "#FF0", "#330"},
		{marking.Red, 0.8, "#F00", "#300"},
	}
	r := m.Height / 3
	for _, l := range lamps {
		fill := l.off
		if m.State == l.state {
			fill = l.on
		}
		s.Circle(perp.P1.Lerp(perp.P2, l.t), r, Style{Fill: fill})
	}
}
