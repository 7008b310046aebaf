package geo

import "math"

// Envelope is the capsule-shaped polygon buffering a skeleton segment.
// It is derived data: regenerate it instead of mutating it.
type Envelope struct {
	Skeleton Segment `json:"skeleton"`
	Poly     Polygon `json:"poly"`
}

// NewEnvelope buffers skeleton by width/2 on each side. Each end cap is a
// half circle approximated by roundness+1 points; roundness 0 or 1 yields a
// plain rectangle. Vertex order is fixed: the P1 cap sweeps first, then the
// P2 cap, both in the same rotational direction.
func NewEnvelope(skeleton Segment, width float64, roundness int) Envelope {
	return Envelope{
		Skeleton: skeleton,
		Poly:     envelopePolygon(skeleton, width, roundness),
	}
}

func envelopePolygon(skeleton Segment, width float64, roundness int) Polygon {
	radius := width / 2
	alpha := skeleton.P1.Sub(skeleton.P2).Angle()
	alphaCCW := alpha - math.Pi/2

	steps := roundness
	if steps < 1 {
		steps = 1
	}
	step := math.Pi / float64(steps)

	pts := make([]Point, 0, 2*(steps+1))
	for i := 0; i <= steps; i++ {
		pts = append(pts, skeleton.P1.Translate(alphaCCW+float64(i)*step, radius))
	}
	for i := 0; i <= steps; i++ {
		pts = append(pts, skeleton.P2.Translate(math.Pi+alphaCCW+float64(i)*step, radius))
	}
	return Polygon{Vertices: pts}
}
