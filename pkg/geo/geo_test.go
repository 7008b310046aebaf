package geo

import (
	"math"
	"testing"
)

const tolerance = 0.01

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

// --- Point tests ---

func TestPointDistance(t *testing.T) {
	a := Pt(0, 0)
	b := Pt(3, 4)
	if !approxEqual(a.Distance(b), 5.0, tolerance) {
		t.Errorf("expected distance 5.0, got %f", a.Distance(b))
	}
}

func TestPointEqualsIgnoresID(t *testing.T) {
	a := Point{X: 1, Y: 2, ID: 7}
	b := Point{X: 1, Y: 2}
	if !a.Equals(b) {
		t.Error("expected points with same coordinates to be equal")
	}
	if a.Equals(Pt(1, 2.0000001)) {
		t.Error("equality must be exact")
	}
}

func TestPointTranslate(t *testing.T) {
	p := Pt(1, 1).Translate(math.Pi/2, 10)
	if !approxEqual(p.X, 1, tolerance) || !approxEqual(p.Y, 11, tolerance) {
		t.Errorf("expected (1,11), got (%f,%f)", p.X, p.Y)
	}
}

func TestPointRound(t *testing.T) {
	p := Point{X: 1.23456, Y: -9.87654, ID: 3}.Round(3)
	if p.X != 1.235 || p.Y != -9.877 || p.ID != 3 {
		t.Errorf("unexpected rounding %+v", p)
	}
}

func TestPointNormalize(t *testing.T) {
	p := Pt(3, 4)
	n := p.Normalize()
	if !approxEqual(n.Length(), 1.0, tolerance) {
		t.Errorf("expected unit length, got %f", n.Length())
	}
	if z := Origin.Normalize(); z != Origin {
		t.Errorf("expected zero vector, got %v", z)
	}
}

func TestNearestPointThreshold(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(10, 0), Pt(20, 0)}
	if i := NearestPoint(Pt(9, 1), pts, 0); i != 1 {
		t.Errorf("expected index 1, got %d", i)
	}
	if i := NearestPoint(Pt(9, 1), pts, 0.5); i != -1 {
		t.Errorf("expected no point within threshold, got %d", i)
	}
}

// --- Segment tests ---

func TestSegmentEqualsIsUndirected(t *testing.T) {
	p, q := Pt(0, 0), Pt(5, 5)
	if !Seg(p, q).Equals(Seg(q, p)) {
		t.Error("expected reversed segment to be equal")
	}
	oneWay := Segment{P1: q, P2: p, OneWay: true}
	if !Seg(p, q).Equals(oneWay) {
		t.Error("one-way flag must not affect topology equality")
	}
	if Seg(p, q).Equals(Seg(p, Pt(5, 6))) {
		t.Error("expected different segments to differ")
	}
}

func TestSegmentProject(t *testing.T) {
	s := Seg(Pt(0, 0), Pt(10, 0))
	proj, offset := s.Project(Pt(4, 3))
	if !approxEqual(proj.X, 4, tolerance) || !approxEqual(proj.Y, 0, tolerance) {
		t.Errorf("expected projection (4,0), got %v", proj)
	}
	if !approxEqual(offset, 0.4, tolerance) {
		t.Errorf("expected offset 0.4, got %f", offset)
	}
	_, offset = s.Project(Pt(15, 1))
	if !approxEqual(offset, 1.5, tolerance) {
		t.Errorf("projection offset must not be clamped, got %f", offset)
	}
}

func TestSegmentDistanceToPoint(t *testing.T) {
	s := Seg(Pt(0, 0), Pt(10, 0))
	if d := s.DistanceToPoint(Pt(5, 3)); !approxEqual(d, 3, tolerance) {
		t.Errorf("expected 3, got %f", d)
	}
	if d := s.DistanceToPoint(Pt(13, 4)); !approxEqual(d, 5, tolerance) {
		t.Errorf("expected 5 (to endpoint), got %f", d)
	}
}

func TestIntersection(t *testing.T) {
	x, tt, u, ok := Intersection(Pt(0, 0), Pt(10, 10), Pt(0, 10), Pt(10, 0))
	if !ok {
		t.Fatal("expected crossing diagonals to intersect")
	}
	if !approxEqual(x.X, 5, tolerance) || !approxEqual(x.Y, 5, tolerance) {
		t.Errorf("expected (5,5), got %v", x)
	}
	if !approxEqual(tt, 0.5, tolerance) || !approxEqual(u, 0.5, tolerance) {
		t.Errorf("expected offsets 0.5, got %f %f", tt, u)
	}
	if _, _, _, ok := Intersection(Pt(0, 0), Pt(10, 0), Pt(0, 1), Pt(10, 1)); ok {
		t.Error("parallel segments must not intersect")
	}
	if _, _, _, ok := Intersection(Pt(0, 0), Pt(1, 1), Pt(0, 10), Pt(10, 0)); ok {
		t.Error("crossing outside the segments must not count")
	}
}

// --- Polygon tests ---

func TestPolygonAreaSquare(t *testing.T) {
	// 10x10 square
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	area := sq.Area()
	if !approxEqual(area, 100, tolerance) {
		t.Errorf("expected area 100, got %f", area)
	}
}

func TestPolygonCentroid(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	c := sq.Centroid()
	if !approxEqual(c.X, 5, tolerance) || !approxEqual(c.Y, 5, tolerance) {
		t.Errorf("expected centroid (5,5), got (%f,%f)", c.X, c.Y)
	}
}

func TestPolygonContains(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !sq.Contains(Pt(5, 5)) {
		t.Error("expected (5,5) inside square")
	}
	if sq.Contains(Pt(15, 5)) {
		t.Error("expected (15,5) outside square")
	}
	if sq.Contains(Pt(-1, 5)) {
		t.Error("expected (-1,5) outside square")
	}
	if sq.Contains(Pt(10, 5)) {
		t.Error("expected boundary point (10,5) to be outside")
	}
}

func TestPolygonBoundingBox(t *testing.T) {
	sq := NewPolygon(Pt(-5, -3), Pt(10, 0), Pt(7, 12))
	mn, mx := sq.BoundingBox()
	if !approxEqual(mn.X, -5, tolerance) || !approxEqual(mn.Y, -3, tolerance) {
		t.Errorf("expected min (-5,-3), got (%f,%f)", mn.X, mn.Y)
	}
	if !approxEqual(mx.X, 10, tolerance) || !approxEqual(mx.Y, 12, tolerance) {
		t.Errorf("expected max (10,12), got (%f,%f)", mx.X, mx.Y)
	}
}

func TestPolygonPerimeter(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if !approxEqual(sq.Perimeter(), 40, tolerance) {
		t.Errorf("expected perimeter 40, got %f", sq.Perimeter())
	}
}

func TestPolygonDistanceToPoint(t *testing.T) {
	sq := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	if d := sq.DistanceToPoint(Pt(5, 13)); !approxEqual(d, 3, tolerance) {
		t.Errorf("expected 3, got %f", d)
	}
	if d := sq.DistanceToPoint(Pt(5, 6)); !approxEqual(d, 4, tolerance) {
		t.Errorf("expected 4 from inside, got %f", d)
	}
}

func TestPolygonDistanceToPolyIsSymmetric(t *testing.T) {
	a := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	// A triangle whose tip points at a's right edge.
	b := NewPolygon(Pt(14, 5), Pt(30, -20), Pt(30, 30))
	ab, ba := a.DistanceToPoly(b), b.DistanceToPoly(a)
	if !approxEqual(ab, ba, 1e-9) {
		t.Errorf("expected symmetric distance, got %f and %f", ab, ba)
	}
	if !approxEqual(ab, 4, tolerance) {
		t.Errorf("expected 4, got %f", ab)
	}
}

func TestPolygonIntersectsPoly(t *testing.T) {
	a := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10))
	overlapping := a.Offset(Pt(5, 5))
	inner := NewPolygon(Pt(2, 2), Pt(4, 2), Pt(4, 4), Pt(2, 4))
	far := a.Offset(Pt(50, 0))

	if !a.IntersectsPoly(overlapping) {
		t.Error("expected overlapping squares to intersect")
	}
	if !a.IntersectsPoly(inner) || !inner.IntersectsPoly(a) {
		t.Error("expected containment to count as intersection both ways")
	}
	if a.IntersectsPoly(far) {
		t.Error("expected distant squares not to intersect")
	}
}

func TestPolygonOffsetDoesNotMutate(t *testing.T) {
	a := NewPolygon(Pt(0, 0), Pt(10, 0), Pt(10, 10))
	b := a.Offset(Pt(1, 2))
	if a.Vertices[0] != Pt(0, 0) {
		t.Error("offset mutated the base polygon")
	}
	if b.Vertices[2] != Pt(11, 12) {
		t.Errorf("expected (11,12), got %v", b.Vertices[2])
	}
}

// --- Circle tests ---

func TestApproximateCircleArea(t *testing.T) {
	circle := ApproximateCircle(Origin, 100, 128)
	expectedArea := math.Pi * 100 * 100
	if !approxEqual(circle.Area(), expectedArea, expectedArea*0.001) {
		t.Errorf("expected circle area ~%f, got %f", expectedArea, circle.Area())
	}
}

func TestNoisyCircleStaysWithinRadius(t *testing.T) {
	c := Pt(40, -7)
	poly := NoisyCircle(c, 80, 32)
	if poly.Len() != 32 {
		t.Fatalf("expected 32 vertices, got %d", poly.Len())
	}
	for i, v := range poly.Vertices {
		d := v.Distance(c)
		if d < 40-tolerance || d > 80+tolerance {
			t.Errorf("vertex %d at distance %f outside [40,80]", i, d)
		}
	}
	again := NoisyCircle(c, 80, 32)
	for i := range poly.Vertices {
		if poly.Vertices[i] != again.Vertices[i] {
			t.Fatal("noisy circle must be deterministic")
		}
	}
}
