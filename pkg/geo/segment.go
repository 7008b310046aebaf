package geo

import "math"

// intersectEps guards against near-parallel lines in Intersection.
const intersectEps = 1e-9

// Segment is an ordered pair of points. OneWay only matters for routing.
type Segment struct {
	P1     Point `json:"p1"`
	P2     Point `json:"p2"`
	OneWay bool  `json:"o,omitempty"`
}

// Seg is a shorthand constructor for a two-way Segment.
func Seg(p1, p2 Point) Segment {
	return Segment{P1: p1, P2: p2}
}

// Length returns the distance between the endpoints.
func (s Segment) Length() float64 {
	return s.P1.Distance(s.P2)
}

// Direction returns the unit vector from P1 to P2.
func (s Segment) Direction() Point {
	return s.P2.Sub(s.P1).Normalize()
}

// Midpoint returns the point halfway between the endpoints.
func (s Segment) Midpoint() Point {
	return MidPoint(s.P1, s.P2)
}

// Includes reports whether p is one of the endpoints.
func (s Segment) Includes(p Point) bool {
	return s.P1.Equals(p) || s.P2.Equals(p)
}

// Equals compares by endpoint set, ignoring order and direction.
func (s Segment) Equals(o Segment) bool {
	return s.Includes(o.P1) && s.Includes(o.P2)
}

// Project returns the orthogonal projection of p on the line through s and
// its offset along s (0 at P1, 1 at P2). The offset is not clamped.
func (s Segment) Project(p Point) (Point, float64) {
	b := s.P2.Sub(s.P1)
	l := b.Length()
	if l < 1e-12 {
		return s.P1, 0
	}
	n := b.Scale(1 / l)
	scaler := p.Sub(s.P1).Dot(n)
	return s.P1.Add(n.Scale(scaler)), scaler / l
}

// DistanceToPoint returns the distance from p to the closest point of s.
func (s Segment) DistanceToPoint(p Point) float64 {
	proj, offset := s.Project(p)
	if offset > 0 && offset < 1 {
		return p.Distance(proj)
	}
	return math.Min(p.Distance(s.P1), p.Distance(s.P2))
}

// Round returns s with both endpoints rounded.
func (s Segment) Round(decimals int) Segment {
	return Segment{P1: s.P1.Round(decimals), P2: s.P2.Round(decimals), OneWay: s.OneWay}
}

// Intersection returns the crossing point of segments ab and cd, with t the
// offset along ab and u the offset along cd. ok is false for parallel
// segments or when the crossing lies outside either segment.
func Intersection(a, b, c, d Point) (p Point, t, u float64, ok bool) {
	tTop := (d.X-c.X)*(a.Y-c.Y) - (d.Y-c.Y)*(a.X-c.X)
	uTop := (c.Y-a.Y)*(a.X-b.X) - (c.X-a.X)*(a.Y-b.Y)
	bottom := (d.Y-c.Y)*(b.X-a.X) - (d.X-c.X)*(b.Y-a.Y)
	if math.Abs(bottom) <= intersectEps {
		return Point{}, 0, 0, false
	}
	t = tTop / bottom
	u = uTop / bottom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, 0, 0, false
	}
	return a.Lerp(b, t), t, u, true
}

// NearestSegment returns the index of the segment closest to p, or -1 if
// none lies within threshold. A threshold <= 0 means unlimited.
func NearestSegment(p Point, segs []Segment, threshold float64) int {
	best := -1
	bestDist := math.MaxFloat64
	if threshold > 0 {
		bestDist = threshold
	}
	for i, s := range segs {
		if d := s.DistanceToPoint(p); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
