// Package routing derives race corridors from the road graph and measures
// progress along them.
package routing

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/graph"
)

var log = logrus.WithField("module", "routing")

// ErrNoRoute is returned when no path joins the start and the target.
var ErrNoRoute = errors.New("routing: no route")

// Corridor is a routed sub-network: the shortest path between two points
// (Skeleton) and the outline of its road surface (Borders).
type Corridor struct {
	Borders  []geo.Segment `json:"borders"`
	Skeleton []geo.Segment `json:"skeleton"`
}

// Options control corridor generation.
type Options struct {
	RoadWidth float64
	Roundness int
	// ExtendEnd lengthens the last border envelope by two road widths so
	// cars can drive through the target. The skeleton is not extended.
	ExtendEnd bool
}

// GenerateCorridor routes from the graph point nearest to start to the one
// nearest to target and envelopes the resulting path.
func GenerateCorridor(g *graph.Graph, start, target geo.Point, opts Options) (*Corridor, error) {
	from, ok := g.Nearest(start, 0)
	if !ok {
		return nil, fmt.Errorf("empty graph: %w", ErrNoRoute)
	}
	to, _ := g.Nearest(target, 0)

	path := g.ShortestPath(from, to)
	if len(path) < 2 {
		log.Warnf("no corridor from %v to %v (%d path points)", start, target, len(path))
		return nil, fmt.Errorf("from %v to %v: %w", start, target, ErrNoRoute)
	}

	skeleton := geo.NewPolyline(path...).Segments()
	shape := append([]geo.Segment(nil), skeleton...)
	if opts.ExtendEnd {
		last := shape[len(shape)-1]
		shape[len(shape)-1] = geo.Seg(last.P1, last.P2.Add(last.Direction().Scale(2*opts.RoadWidth)))
	}
	polys := lo.Map(shape, func(s geo.Segment, _ int) geo.Polygon {
		return geo.NewEnvelope(s, opts.RoadWidth, opts.Roundness).Poly
	})

	c := &Corridor{
		Borders:  geo.Union(polys),
		Skeleton: skeleton,
	}
	log.Debugf("corridor: %d skeleton segments, %d border segments, length %.1f",
		len(c.Skeleton), len(c.Borders), c.Length())
	return c, nil
}

// Length is the total skeleton length.
func (c *Corridor) Length() float64 {
	return lo.SumBy(c.Skeleton, func(s geo.Segment) float64 { return s.Length() })
}

// Progress returns how far along the skeleton p is, as a fraction of the
// total length clamped to [0, 1]. The position is projected orthogonally onto
// the nearest skeleton segment.
func (c *Corridor) Progress(p geo.Point) float64 {
	total := c.Length()
	if total == 0 {
		return 0
	}
	along := c.path().DistanceAlong(p)
	return lo.Clamp(along/total, 0, 1)
}

// Target returns the last skeleton point.
func (c *Corridor) Target() geo.Point {
	if len(c.Skeleton) == 0 {
		return geo.Point{}
	}
	return c.Skeleton[len(c.Skeleton)-1].P2
}

func (c *Corridor) path() geo.Polyline {
	if len(c.Skeleton) == 0 {
		return geo.Polyline{}
	}
	pts := make([]geo.Point, 0, len(c.Skeleton)+1)
	pts = append(pts, c.Skeleton[0].P1)
	for _, s := range c.Skeleton {
		pts = append(pts, s.P2)
	}
	return geo.NewPolyline(pts...)
}
