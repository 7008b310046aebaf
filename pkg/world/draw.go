package world

import (
	"sort"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/marking"
	"github.com/potemkeen/self-driving-car/pkg/render"
)

// CarAlpha is the opacity of every car except the best one.
const CarAlpha = 0.2

var corridorStyle = render.Style{Stroke: "red", LineWidth: 4, Dash: []float64{3, 3}}

// item is a building or tree queued for back-to-front painting.
type item struct {
	dist  float64
	paint func()
}

// Draw paints one frame as seen from viewPoint and advances the light
// schedule. Start markings are only painted when showStart is set.
// Buildings and trees farther than radius from viewPoint are culled.
func (w *World) Draw(s render.Surface, viewPoint geo.Point, showStart bool, radius float64) {
	w.UpdateLights()

	for _, env := range w.Envelopes {
		render.Polygon(s, env.Poly, render.RoadStyle)
	}
	for _, m := range w.Markings {
		if m.Kind == marking.Start && !showStart {
			continue
		}
		render.Marking(s, m)
	}
	for _, seg := range w.Graph.Segments() {
		render.Segment(s, seg, render.SkeletonStyle)
	}
	for _, seg := range w.RoadBorders {
		render.Segment(s, seg, render.BorderStyle)
	}
	if w.Corridor != nil {
		for _, seg := range w.Corridor.Borders {
			render.Segment(s, seg, corridorStyle)
		}
	}

	s.SetAlpha(CarAlpha)
	for _, c := range w.Cars {
		render.Car(s, c.Polygon(), c.Color())
	}
	s.SetAlpha(1)
	if w.BestCar != nil {
		render.Car(s, w.BestCar.Polygon(), w.BestCar.Color())
	}

	for _, it := range w.visibleItems(s, viewPoint, radius) {
		it.paint()
	}

	w.frameCount++
}

// visibleItems returns the buildings and trees within radius of viewPoint,
// farthest first.
func (w *World) visibleItems(s render.Surface, viewPoint geo.Point, radius float64) []item {
	var items []item
	for _, b := range w.Buildings {
		d := b.Base.DistanceToPoint(viewPoint)
		if d >= radius {
			continue
		}
		b := b
		items = append(items, item{dist: d, paint: func() { render.Building(s, b, viewPoint) }})
	}
	for _, t := range w.Trees {
		d := t.Base.DistanceToPoint(viewPoint)
		if d >= radius {
			continue
		}
		t := t
		items = append(items, item{dist: d, paint: func() { render.Tree(s, t, viewPoint) }})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].dist > items[j].dist })
	return items
}
