package geo

import "math"

// Point is a position (or a vector) in the world plane. ID is only set for
// points that correlate with an external node, such as an OSM node id.
type Point struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	ID int64   `json:"id,omitempty"`
}

// Origin is the zero point.
var Origin = Point{}

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Equals reports exact coordinate equality. IDs are ignored.
func (p Point) Equals(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p * s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Length returns the Euclidean length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the same direction.
// Returns zero vector if length is zero.
func (p Point) Normalize() Point {
	l := p.Length()
	if l < 1e-12 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Distance returns the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Angle returns the angle of the vector from the positive X axis in radians.
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}

// Translate moves p by offset along the direction given by angle.
func (p Point) Translate(angle, offset float64) Point {
	return Point{
		X: p.X + math.Cos(angle)*offset,
		Y: p.Y + math.Sin(angle)*offset,
	}
}

// Lerp returns the linear interpolation between p and q at t in [0,1].
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Perp returns a vector perpendicular to p (rotated 90 degrees counterclockwise).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Round returns p with both coordinates rounded to the given number of decimals.
func (p Point) Round(decimals int) Point {
	f := math.Pow(10, float64(decimals))
	return Point{
		X:  math.Round(p.X*f) / f,
		Y:  math.Round(p.Y*f) / f,
		ID: p.ID,
	}
}

// MidPoint returns the midpoint between p and q.
func MidPoint(p, q Point) Point {
	return p.Lerp(q, 0.5)
}

// NearestPoint returns the index of the point in pts closest to p, or -1 if
// none lies within threshold. A threshold <= 0 means unlimited.
func NearestPoint(p Point, pts []Point, threshold float64) int {
	best := -1
	bestDist := math.MaxFloat64
	if threshold > 0 {
		bestDist = threshold
	}
	for i, q := range pts {
		if d := p.Distance(q); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
