package geo

import "math"

// Polyline is an ordered sequence of points forming a path.
type Polyline struct {
	Points []Point
}

// NewPolyline creates a polyline from a list of points.
func NewPolyline(pts ...Point) Polyline {
	return Polyline{Points: pts}
}

// Segments returns the consecutive segments of the polyline.
func (pl Polyline) Segments() []Segment {
	if len(pl.Points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(pl.Points)-1)
	for i := 1; i < len(pl.Points); i++ {
		segs = append(segs, Segment{P1: pl.Points[i-1], P2: pl.Points[i]})
	}
	return segs
}

// Length returns the total arc length of the polyline.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance(pl.Points[i])
	}
	return total
}

// PointAt returns the point at fraction t in [0,1] along the polyline length.
func (pl Polyline) PointAt(t float64) Point {
	if len(pl.Points) == 0 {
		return Point{}
	}
	if len(pl.Points) == 1 || t <= 0 {
		return pl.Points[0]
	}
	if t >= 1 {
		return pl.Points[len(pl.Points)-1]
	}

	totalLen := pl.Length()
	targetLen := t * totalLen
	walked := 0.0

	for i := 1; i < len(pl.Points); i++ {
		segLen := pl.Points[i-1].Distance(pl.Points[i])
		if walked+segLen >= targetLen {
			frac := (targetLen - walked) / segLen
			return pl.Points[i-1].Lerp(pl.Points[i], frac)
		}
		walked += segLen
	}
	return pl.Points[len(pl.Points)-1]
}

// NearestPoint returns the closest point on the polyline to p, and the distance.
func (pl Polyline) NearestPoint(p Point) (Point, float64) {
	if len(pl.Points) == 0 {
		return Point{}, math.MaxFloat64
	}
	if len(pl.Points) == 1 {
		d := p.Distance(pl.Points[0])
		return pl.Points[0], d
	}

	bestPt := pl.Points[0]
	bestDist := p.Distance(pl.Points[0])

	for i := 1; i < len(pl.Points); i++ {
		pt, dist := nearestPointOnSegment(p, pl.Points[i-1], pl.Points[i])
		if dist < bestDist {
			bestDist = dist
			bestPt = pt
		}
	}
	return bestPt, bestDist
}

// DistanceAlong finds the segment nearest to p and returns the length walked
// from the start of the polyline to p's orthogonal projection on it. The
// projection is not clamped, so points before the start or past the end give
// values outside [0, Length()].
func (pl Polyline) DistanceAlong(p Point) float64 {
	segs := pl.Segments()
	nearest := NearestSegment(p, segs, 0)
	if nearest < 0 {
		return 0
	}
	walked := 0.0
	for _, s := range segs[:nearest] {
		walked += s.Length()
	}
	_, offset := segs[nearest].Project(p)
	return walked + offset*segs[nearest].Length()
}

// nearestPointOnSegment returns the closest point on segment ab to p.
func nearestPointOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	abLen2 := ab.Dot(ab)
	if abLen2 < 1e-12 {
		d := p.Distance(a)
		return a, d
	}
	t := p.Sub(a).Dot(ab) / abLen2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Scale(t))
	return closest, p.Distance(closest)
}
