package geo

// splitEps keeps intersections at (or numerically next to) an edge endpoint
// from producing zero-length pieces.
const splitEps = 1e-9

// Union returns the boundary of the union of polys as a list of segments.
//
// Every polygon's edges are first split at their crossings with every other
// polygon's edges so that overlapping outlines share vertices. A resulting
// piece is kept unless its midpoint lies strictly inside some other polygon.
// Pieces whose midpoint sits on another polygon's boundary are kept, so
// shared borders survive. The inputs are not modified.
func Union(polys []Polygon) []Segment {
	edges := make([][]Segment, len(polys))
	for i, p := range polys {
		edges[i] = p.Edges()
	}
	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			edges[i], edges[j] = breakEdges(edges[i], edges[j])
		}
	}

	var kept []Segment
	for i, segs := range edges {
		for _, seg := range segs {
			mid := seg.Midpoint()
			keep := true
			for j, other := range polys {
				if i != j && other.Contains(mid) {
					keep = false
					break
				}
			}
			if keep {
				kept = append(kept, seg)
			}
		}
	}
	return kept
}

// breakEdges splits the edges of a and b at every point where they cross.
func breakEdges(a, b []Segment) ([]Segment, []Segment) {
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			x, t, u, ok := Intersection(a[i].P1, a[i].P2, b[j].P1, b[j].P2)
			if !ok {
				continue
			}
			if t > splitEps && t < 1-splitEps {
				a = splitAt(a, i, x)
			}
			if u > splitEps && u < 1-splitEps {
				b = splitAt(b, j, x)
			}
		}
	}
	return a, b
}

// splitAt replaces segs[i] by two pieces meeting at x.
func splitAt(segs []Segment, i int, x Point) []Segment {
	tail := Segment{P1: x, P2: segs[i].P2, OneWay: segs[i].OneWay}
	segs[i].P2 = x
	segs = append(segs, Segment{})
	copy(segs[i+2:], segs[i+1:])
	segs[i+1] = tail
	return segs
}
