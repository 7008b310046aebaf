package geo

import "math"

// ApproximateCircle returns a polygon approximating a circle with the given
// center, radius, and number of segments. Vertices are in CCW order.
func ApproximateCircle(center Point, radius float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return Polygon{Vertices: pts}
}

// NoisyCircle is ApproximateCircle with each vertex radius modulated between
// half and full radius. The modulation depends only on the inputs, so the
// same center and radius always produce the same outline.
func NoisyCircle(center Point, radius float64, segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	size := radius * 2
	pts := make([]Point, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		k := math.Pow(math.Cos(math.Mod((angle+center.X)*size, 17)), 2)
		r := radius * (0.5 + 0.5*k)
		pts[i] = center.Translate(angle, r)
	}
	return Polygon{Vertices: pts}
}
