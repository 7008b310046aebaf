package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

// document is the serialized form of a graph. Segments carry their endpoint
// coordinates, which are resolved back to points on load.
type document struct {
	Points   []geo.Point   `json:"points"`
	Segments []geo.Segment `json:"segments"`
}

// MarshalJSON encodes the graph as {points, segments}.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := document{Points: g.Points(), Segments: g.Segments()}
	if doc.Points == nil {
		doc.Points = []geo.Point{}
	}
	if doc.Segments == nil {
		doc.Segments = []geo.Segment{}
	}
	return json.Marshal(doc)
}

// UnmarshalJSON replaces the graph contents. Segment endpoints are matched
// to points by coordinates; an endpoint with no matching point is added.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	g.Dispose()
	g.next = 0
	for _, p := range doc.Points {
		g.AddPoint(p)
	}
	for _, s := range doc.Segments {
		a, _ := g.TryAddPoint(s.P1)
		b, _ := g.TryAddPoint(s.P2)
		g.edges = append(g.edges, Edge{A: a, B: b, OneWay: s.OneWay})
	}
	return nil
}

// Hash returns a digest of the graph contents. Two graphs with the same
// points and segments in the same order hash identically.
func (g *Graph) Hash() string {
	data, err := g.MarshalJSON()
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Clone returns a deep copy that preserves handles.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		points: make(map[PointID]geo.Point, len(g.points)),
		order:  append([]PointID(nil), g.order...),
		edges:  append([]Edge(nil), g.edges...),
		next:   g.next,
	}
	for id, p := range g.points {
		c.points[id] = p
	}
	return c
}

// Round returns a copy with every point rounded to the given decimals.
// Handles and segments are preserved.
func (g *Graph) Round(decimals int) *Graph {
	c := g.Clone()
	for id, p := range c.points {
		c.points[id] = p.Round(decimals)
	}
	return c
}
