// Package graph holds the user-authored road skeleton: points and the
// segments joining them.
//
// Points live in an arena keyed by PointID. Segments refer to handles, so
// moving a point moves every segment that meets there.
package graph

import (
	"errors"
	"fmt"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

// ErrUnknownPoint is returned when a handle does not name a point of the graph.
var ErrUnknownPoint = errors.New("graph: unknown point")

// PointID is a stable handle to a point owned by a Graph.
type PointID int

// Edge is a segment expressed in point handles.
type Edge struct {
	A      PointID
	B      PointID
	OneWay bool
}

// Includes reports whether id is one of the endpoints.
func (e Edge) Includes(id PointID) bool {
	return e.A == id || e.B == id
}

// Other returns the endpoint opposite to id.
func (e Edge) Other(id PointID) PointID {
	if e.A == id {
		return e.B
	}
	return e.A
}

// Graph is the mutable road skeleton. It is not safe for concurrent use.
type Graph struct {
	points map[PointID]geo.Point
	order  []PointID
	edges  []Edge
	next   PointID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{points: make(map[PointID]geo.Point)}
}

// FromSegments builds a graph from plain segments, merging endpoints with
// equal coordinates into one point.
func FromSegments(segs []geo.Segment) *Graph {
	g := New()
	for _, s := range segs {
		a, _ := g.TryAddPoint(s.P1)
		b, _ := g.TryAddPoint(s.P2)
		g.TryAddSegment(a, b, s.OneWay)
	}
	return g
}

// AddPoint appends p unconditionally and returns its handle.
func (g *Graph) AddPoint(p geo.Point) PointID {
	id := g.next
	g.next++
	g.points[id] = p
	g.order = append(g.order, id)
	return id
}

// Locate returns the handle of the first point equal to p.
func (g *Graph) Locate(p geo.Point) (PointID, bool) {
	for _, id := range g.order {
		if g.points[id].Equals(p) {
			return id, true
		}
	}
	return 0, false
}

// ContainsPoint reports whether a point equal to p exists.
func (g *Graph) ContainsPoint(p geo.Point) bool {
	_, ok := g.Locate(p)
	return ok
}

// TryAddPoint adds p unless an equal point exists. It always returns the
// handle of the point at p's position, and whether it was added.
func (g *Graph) TryAddPoint(p geo.Point) (PointID, bool) {
	if id, ok := g.Locate(p); ok {
		return id, false
	}
	return g.AddPoint(p), true
}

// Point returns the point behind a handle.
func (g *Graph) Point(id PointID) (geo.Point, bool) {
	p, ok := g.points[id]
	return p, ok
}

// MovePoint changes the position of an existing point.
func (g *Graph) MovePoint(id PointID, p geo.Point) error {
	old, ok := g.points[id]
	if !ok {
		return fmt.Errorf("move %d: %w", id, ErrUnknownPoint)
	}
	if p.ID == 0 {
		p.ID = old.ID
	}
	g.points[id] = p
	return nil
}

// RemovePoint removes a point and every segment that includes it.
func (g *Graph) RemovePoint(id PointID) error {
	if _, ok := g.points[id]; !ok {
		return fmt.Errorf("remove %d: %w", id, ErrUnknownPoint)
	}
	kept := g.edges[:0]
	for _, e := range g.edges {
		if !e.Includes(id) {
			kept = append(kept, e)
		}
	}
	g.edges = kept
	delete(g.points, id)
	for i, o := range g.order {
		if o == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return nil
}

// PointIDs returns the handles in insertion order.
func (g *Graph) PointIDs() []PointID {
	return append([]PointID(nil), g.order...)
}

// Points returns the points in insertion order.
func (g *Graph) Points() []geo.Point {
	pts := make([]geo.Point, len(g.order))
	for i, id := range g.order {
		pts[i] = g.points[id]
	}
	return pts
}

// NumPoints returns the number of points.
func (g *Graph) NumPoints() int {
	return len(g.order)
}

// AddSegment appends a segment between two existing points.
func (g *Graph) AddSegment(a, b PointID, oneWay bool) error {
	if _, ok := g.points[a]; !ok {
		return fmt.Errorf("add segment: %d: %w", a, ErrUnknownPoint)
	}
	if _, ok := g.points[b]; !ok {
		return fmt.Errorf("add segment: %d: %w", b, ErrUnknownPoint)
	}
	g.edges = append(g.edges, Edge{A: a, B: b, OneWay: oneWay})
	return nil
}

// ContainsSegment reports whether a segment with the same endpoint
// coordinates exists, in either direction.
func (g *Graph) ContainsSegment(s geo.Segment) bool {
	for _, e := range g.edges {
		if g.Segment(e).Equals(s) {
			return true
		}
	}
	return false
}

// TryAddSegment adds a segment unless an equal one exists or both ends are
// the same position. It reports whether the segment was added.
func (g *Graph) TryAddSegment(a, b PointID, oneWay bool) bool {
	pa, okA := g.points[a]
	pb, okB := g.points[b]
	if !okA || !okB || pa.Equals(pb) {
		return false
	}
	if g.ContainsSegment(geo.Seg(pa, pb)) {
		return false
	}
	g.edges = append(g.edges, Edge{A: a, B: b, OneWay: oneWay})
	return true
}

// RemoveSegment removes the first edge equal to e and reports whether one was found.
func (g *Graph) RemoveSegment(e Edge) bool {
	for i, o := range g.edges {
		if o == e {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			return true
		}
	}
	return false
}

// Edges returns the segments as handle pairs, in insertion order.
func (g *Graph) Edges() []Edge {
	return append([]Edge(nil), g.edges...)
}

// Segment resolves an edge into coordinates.
func (g *Graph) Segment(e Edge) geo.Segment {
	return geo.Segment{P1: g.points[e.A], P2: g.points[e.B], OneWay: e.OneWay}
}

// Segments returns every segment resolved into coordinates.
func (g *Graph) Segments() []geo.Segment {
	segs := make([]geo.Segment, len(g.edges))
	for i, e := range g.edges {
		segs[i] = g.Segment(e)
	}
	return segs
}

// NumSegments returns the number of segments.
func (g *Graph) NumSegments() int {
	return len(g.edges)
}

// SegmentsWithPoint returns every edge that includes id.
func (g *Graph) SegmentsWithPoint(id PointID) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Includes(id) {
			out = append(out, e)
		}
	}
	return out
}

// SegmentsLeavingFrom returns the edges that can be travelled starting at
// id. A one-way edge only leaves from its first endpoint.
func (g *Graph) SegmentsLeavingFrom(id PointID) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.OneWay {
			if e.A == id {
				out = append(out, e)
			}
			continue
		}
		if e.Includes(id) {
			out = append(out, e)
		}
	}
	return out
}

// Degree returns the number of edges meeting at id.
func (g *Graph) Degree(id PointID) int {
	return len(g.SegmentsWithPoint(id))
}

// Intersections returns the points where more than two segments meet, in
// insertion order.
func (g *Graph) Intersections() []geo.Point {
	degree := make(map[PointID]int, len(g.order))
	for _, e := range g.edges {
		degree[e.A]++
		degree[e.B]++
	}
	var out []geo.Point
	for _, id := range g.order {
		if degree[id] > 2 {
			out = append(out, g.points[id])
		}
	}
	return out
}

// Nearest returns the point closest to p within threshold (unlimited when
// threshold <= 0).
func (g *Graph) Nearest(p geo.Point, threshold float64) (PointID, bool) {
	i := geo.NearestPoint(p, g.Points(), threshold)
	if i < 0 {
		return 0, false
	}
	return g.order[i], true
}

// Dispose removes every point and segment.
func (g *Graph) Dispose() {
	g.points = make(map[PointID]geo.Point)
	g.order = nil
	g.edges = nil
}
