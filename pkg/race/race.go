// Package race keeps score for cars driving a corridor: progress, finish
// ticks, damage and standings.
package race

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/marking"
	"github.com/potemkeen/self-driving-car/pkg/routing"
	"github.com/potemkeen/self-driving-car/pkg/world"
)

var log = logrus.WithField("module", "race")

// Car body size.
const (
	CarWidth  = 30.0
	CarHeight = 50.0
)

// DefaultStart is the start position used when the world has no Start
// marking.
var DefaultStart = geo.Pt(100, 100)

// Entrant is one car in a race. Position and Angle are written by the
// driving simulation; the race fills in the rest.
type Entrant struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Position geo.Point `json:"position"`
	Angle    float64   `json:"angle"`
	Paint    string    `json:"color"`

	Progress   float64 `json:"progress"`
	Finished   bool    `json:"finished"`
	FinishTick int     `json:"finish_tick,omitempty"`
	Damaged    bool    `json:"damaged"`
}

// NewEntrant places a car at a pose.
func NewEntrant(name, color string, pos geo.Point, angle float64) *Entrant {
	return &Entrant{
		ID:       uuid.NewString(),
		Name:     name,
		Position: pos,
		Angle:    angle,
		Paint:    color,
	}
}

// Polygon is the car body: a CarWidth x CarHeight rectangle rotated by Angle
// around Position.
func (e *Entrant) Polygon() geo.Polygon {
	rad := math.Hypot(CarWidth, CarHeight) / 2
	alpha := math.Atan2(CarWidth, CarHeight)
	corner := func(a float64) geo.Point {
		return geo.Pt(e.Position.X-math.Sin(a)*rad, e.Position.Y-math.Cos(a)*rad)
	}
	return geo.NewPolygon(
		corner(e.Angle-alpha),
		corner(e.Angle+alpha),
		corner(math.Pi+e.Angle-alpha),
		corner(math.Pi+e.Angle+alpha),
	)
}

// Color is the paint color.
func (e *Entrant) Color() string {
	return e.Paint
}

// Crashed reports whether the car body crosses any border.
func (e *Entrant) Crashed(borders []geo.Segment) bool {
	edges := e.Polygon().Edges()
	return lo.SomeBy(borders, func(b geo.Segment) bool {
		return lo.SomeBy(edges, func(s geo.Segment) bool {
			_, _, _, ok := geo.Intersection(s.P1, s.P2, b.P1, b.P2)
			return ok
		})
	})
}

// StartPose returns the position and heading of the first Start marking,
// or DefaultStart facing up when there is none.
func StartPose(markings []*marking.Marking) (geo.Point, float64) {
	pos, dir := DefaultStart, geo.Pt(0, -1)
	if starts := marking.Filter(markings, marking.Start); len(starts) > 0 {
		pos, dir = starts[0].Center, starts[0].Direction
	}
	return pos, -dir.Angle() + math.Pi/2
}

// Race scores entrants against a corridor.
type Race struct {
	Corridor *routing.Corridor
	entrants []*Entrant
	tick     int
}

// New starts a race on c.
func New(c *routing.Corridor, entrants ...*Entrant) *Race {
	return &Race{Corridor: c, entrants: entrants}
}

// Grid creates n entrants at the start pose found in markings.
func Grid(n int, markings []*marking.Marking, colors ...string) []*Entrant {
	pos, angle := StartPose(markings)
	return lo.Times(n, func(i int) *Entrant {
		color := "blue"
		if len(colors) > 0 {
			color = colors[i%len(colors)]
		}
		return NewEntrant(fmt.Sprintf("car-%d", i+1), color, pos, angle)
	})
}

// Tick is the number of steps taken.
func (r *Race) Tick() int {
	return r.tick
}

// Step measures every unfinished entrant, records finishes and damage, and
// re-sorts the standings by progress. Without a corridor it only counts the
// tick.
func (r *Race) Step() {
	r.tick++
	if r.Corridor == nil {
		return
	}
	for _, e := range r.entrants {
		if e.Finished {
			continue
		}
		e.Damaged = e.Damaged || e.Crashed(r.Corridor.Borders)
		e.Progress = r.Corridor.Progress(e.Position)
		if e.Progress >= 1 {
			e.Progress = 1
			e.Finished = true
			e.FinishTick = r.tick
			log.Infof("%s finished at tick %d", e.Name, r.tick)
		}
	}
	sort.SliceStable(r.entrants, func(i, j int) bool {
		return r.entrants[i].Progress > r.entrants[j].Progress
	})
}

// Standings returns the entrants, leader first.
func (r *Race) Standings() []*Entrant {
	return append([]*Entrant(nil), r.entrants...)
}

// Leader is the entrant with the most progress, or nil.
func (r *Race) Leader() *Entrant {
	if len(r.entrants) == 0 {
		return nil
	}
	return r.entrants[0]
}

// Done reports whether every entrant finished.
func (r *Race) Done() bool {
	return lo.EveryBy(r.entrants, func(e *Entrant) bool { return e.Finished })
}

// Attach publishes the entrants to w for drawing, with the leader as the
// best car.
func (r *Race) Attach(w *world.World) {
	w.Cars = lo.Map(r.entrants, func(e *Entrant, _ int) world.Car { return e })
	w.BestCar = nil
	if l := r.Leader(); l != nil {
		w.BestCar = l
	}
	w.Corridor = r.Corridor
}
