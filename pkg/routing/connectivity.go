package routing

import (
	"math"
	"sort"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

// ConnectTolerance is the distance under which two segment endpoints are
// considered the same junction.
const ConnectTolerance = 1.0

// BuildConnectivity reports, for every segment index, the indices of the
// segments sharing an endpoint with it within ConnectTolerance. The result
// is symmetric and each neighbour list is sorted.
func BuildConnectivity(segments []geo.Segment) map[int][]int {
	type endpoint struct {
		segIdx int
		isEnd  bool // false=P1, true=P2
	}

	cellSize := ConnectTolerance * 2
	buckets := make(map[[2]int][]endpoint)

	cellKey := func(p geo.Point) [2]int {
		return [2]int{int(math.Floor(p.X / cellSize)), int(math.Floor(p.Y / cellSize))}
	}
	end := func(s geo.Segment, isEnd bool) geo.Point {
		if isEnd {
			return s.P2
		}
		return s.P1
	}

	// Index every endpoint into its cell and the eight neighbours.
	for i, seg := range segments {
		for _, isEnd := range []bool{false, true} {
			key := cellKey(end(seg, isEnd))
			ep := endpoint{segIdx: i, isEnd: isEnd}
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					bk := [2]int{key[0] + dx, key[1] + dy}
					buckets[bk] = append(buckets[bk], ep)
				}
			}
		}
	}

	conn := make(map[int]map[int]bool)
	link := func(a, b int) {
		if conn[a] == nil {
			conn[a] = make(map[int]bool)
		}
		conn[a][b] = true
	}
	for i, seg := range segments {
		for _, isEnd := range []bool{false, true} {
			pt := end(seg, isEnd)
			for _, ep := range buckets[cellKey(pt)] {
				if ep.segIdx == i {
					continue
				}
				if pt.Distance(end(segments[ep.segIdx], ep.isEnd)) <= ConnectTolerance {
					link(i, ep.segIdx)
					link(ep.segIdx, i)
				}
			}
		}
	}

	result := make(map[int][]int, len(conn))
	for id, neighbours := range conn {
		ids := make([]int, 0, len(neighbours))
		for nid := range neighbours {
			ids = append(ids, nid)
		}
		sort.Ints(ids)
		result[id] = ids
	}
	return result
}

// Components groups segment indices into connected networks, ordered by
// their smallest index. Isolated segments form their own component.
func Components(segments []geo.Segment) [][]int {
	conn := BuildConnectivity(segments)
	seen := make([]bool, len(segments))
	var out [][]int
	for i := range segments {
		if seen[i] {
			continue
		}
		var comp []int
		queue := []int{i}
		seen[i] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, n := range conn[cur] {
				if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
		sort.Ints(comp)
		out = append(out, comp)
	}
	return out
}
