package geo

import "math"

// boundaryEps is the distance under which a point counts as lying on an edge.
const boundaryEps = 1e-6

// Polygon is a closed polygon defined by its vertices in order.
type Polygon struct {
	Vertices []Point `json:"points"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point) Polygon {
	return Polygon{Vertices: pts}
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.Vertices)
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point, Point) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// Edges returns the closed loop of edges, the last one joining the final
// vertex back to the first.
func (p Polygon) Edges() []Segment {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, n)
	for i := range p.Vertices {
		a, b := p.Edge(i)
		edges[i] = Segment{P1: a, P2: b}
	}
	return edges
}

// SignedArea returns the signed area using the shoelace formula.
// Positive for counterclockwise winding, negative for clockwise.
func (p Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.Vertices[i].X * p.Vertices[j].Y
		area -= p.Vertices[j].X * p.Vertices[i].Y
	}
	return area / 2
}

// Area returns the unsigned area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// Centroid returns the vertex average. Good enough for the convex footprints
// this package generates.
func (p Polygon) Centroid() Point {
	n := len(p.Vertices)
	if n == 0 {
		return Point{}
	}
	sum := Point{}
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	return sum.Scale(1.0 / float64(n))
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point, Point) {
	return Bounds(p.Vertices)
}

// Bounds returns the axis-aligned bounding box of pts as (min, max).
func Bounds(pts []Point) (Point, Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	minP := pts[0]
	maxP := pts[0]
	for _, v := range pts[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Y = math.Min(minP.Y, v.Y)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Y = math.Max(maxP.Y, v.Y)
	}
	minP.ID, maxP.ID = 0, 0
	return minP, maxP
}

// Contains returns true if the point is strictly inside the polygon, using
// ray casting. Points on an edge are outside.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	if p.DistanceToPoint(pt) < boundaryEps {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[j]
		if (vi.Y > pt.Y) != (vj.Y > pt.Y) &&
			pt.X < (vj.X-vi.X)*(pt.Y-vi.Y)/(vj.Y-vi.Y)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// DistanceToPoint returns the minimum distance from pt to any edge.
func (p Polygon) DistanceToPoint(pt Point) float64 {
	best := math.MaxFloat64
	for _, e := range p.Edges() {
		best = math.Min(best, e.DistanceToPoint(pt))
	}
	if len(p.Vertices) == 1 {
		best = pt.Distance(p.Vertices[0])
	}
	return best
}

// DistanceToPoly returns the smallest vertex-to-edge distance between p and
// other, measured in both directions.
func (p Polygon) DistanceToPoly(other Polygon) float64 {
	best := math.MaxFloat64
	for _, v := range p.Vertices {
		best = math.Min(best, other.DistanceToPoint(v))
	}
	for _, v := range other.Vertices {
		best = math.Min(best, p.DistanceToPoint(v))
	}
	return best
}

// IntersectsPoly reports whether any pair of edges crosses or touches, or
// one polygon holds a vertex of the other.
func (p Polygon) IntersectsPoly(other Polygon) bool {
	otherEdges := other.Edges()
	for _, e1 := range p.Edges() {
		for _, e2 := range otherEdges {
			if _, _, _, ok := Intersection(e1.P1, e1.P2, e2.P1, e2.P2); ok {
				return true
			}
		}
	}
	for _, v := range other.Vertices {
		if p.Contains(v) {
			return true
		}
	}
	for _, v := range p.Vertices {
		if other.Contains(v) {
			return true
		}
	}
	return false
}

// Offset returns a copy of p translated by v. The receiver is not modified.
func (p Polygon) Offset(v Point) Polygon {
	pts := make([]Point, len(p.Vertices))
	for i, q := range p.Vertices {
		pts[i] = q.Add(v)
	}
	return Polygon{Vertices: pts}
}

// Round returns a copy of p with every vertex rounded.
func (p Polygon) Round(decimals int) Polygon {
	pts := make([]Point, len(p.Vertices))
	for i, q := range p.Vertices {
		pts[i] = q.Round(decimals)
	}
	return Polygon{Vertices: pts}
}

// Perimeter returns the total perimeter length.
func (p Polygon) Perimeter() float64 {
	n := len(p.Vertices)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		total += p.Vertices[i].Distance(p.Vertices[j])
	}
	return total
}
