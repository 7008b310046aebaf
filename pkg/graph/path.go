package graph

import (
	"container/heap"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

// ShortestPath runs Dijkstra from start to end using Euclidean segment
// lengths, honouring one-way segments. It returns the points of the path
// including both ends, or nil when either handle is unknown or end cannot be
// reached. The graph is not modified.
func (g *Graph) ShortestPath(start, end PointID) []geo.Point {
	if _, ok := g.points[start]; !ok {
		return nil
	}
	if _, ok := g.points[end]; !ok {
		return nil
	}

	adj := g.adjacency()
	dist := map[PointID]float64{start: 0}
	prev := make(map[PointID]PointID)
	visited := make(map[PointID]bool)

	pq := &queue{}
	heap.Push(pq, &entry{id: start})
	seq := 1
	for pq.Len() > 0 {
		cur := heap.Pop(pq).(*entry)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		if cur.id == end {
			break
		}
		for _, e := range adj[cur.id] {
			other := e.Other(cur.id)
			if visited[other] {
				continue
			}
			d := cur.dist + g.Segment(e).Length()
			if old, ok := dist[other]; ok && d >= old {
				continue
			}
			dist[other] = d
			prev[other] = cur.id
			heap.Push(pq, &entry{id: other, dist: d, seq: seq})
			seq++
		}
	}
	if !visited[end] {
		return nil
	}

	var rev []geo.Point
	for id := end; ; id = prev[id] {
		rev = append(rev, g.points[id])
		if id == start {
			break
		}
	}
	path := make([]geo.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// adjacency maps each point to the edges leaving from it, in edge order.
func (g *Graph) adjacency() map[PointID][]Edge {
	adj := make(map[PointID][]Edge, len(g.order))
	for _, e := range g.edges {
		adj[e.A] = append(adj[e.A], e)
		if !e.OneWay {
			adj[e.B] = append(adj[e.B], e)
		}
	}
	return adj
}

// entry is a queued point. seq breaks distance ties in discovery order.
type entry struct {
	id    PointID
	dist  float64
	seq   int
	index int
}

// queue is a min-heap of entries ordered by distance.
type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].dist == q[j].dist {
		return q[i].seq < q[j].seq
	}
	return q[i].dist < q[j].dist
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	e := x.(*entry)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}
