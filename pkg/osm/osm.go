// Package osm imports OpenStreetMap data (Overpass JSON) into a road graph
// and building footprints using a local flat projection.
package osm

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/graph"
	"github.com/potemkeen/self-driving-car/pkg/layout"
)

var log = logrus.WithField("module", "osm")

// ErrNoNodes is returned for input without any node.
var ErrNoNodes = errors.New("osm: no nodes")

// metersPerDegree is the length of one degree of latitude. Projected
// coordinates are scaled by a further factor of ten.
const metersPerDegree = 111000

// Result is an imported map.
type Result struct {
	Graph     *graph.Graph
	Buildings []layout.Building
	// Center is the middle of the projected area, a natural view offset.
	Center geo.Point
	Width  float64
	Height float64
}

// ParseFile reads an Overpass JSON file.
func ParseFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading osm file: %w", err)
	}
	return Parse(data)
}

// Parse decodes Overpass JSON and imports it.
func Parse(data []byte) (*Result, error) {
	var o osm.OSM
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("decoding osm json: %w", err)
	}
	return Import(&o)
}

// Import projects o onto the plane. Ways tagged "building" become
// buildings; every other way becomes road segments. Only nodes used by a
// road are added to the graph, and each keeps its OSM id.
func Import(o *osm.OSM) (*Result, error) {
	if len(o.Nodes) == 0 {
		return nil, ErrNoNodes
	}
	proj := newProjection(o.Nodes)

	var roads, footprints osm.Ways
	for _, w := range o.Ways {
		if w.Tags.Find("building") != "" {
			footprints = append(footprints, w)
		} else {
			roads = append(roads, w)
		}
	}

	used := make(map[osm.NodeID]bool)
	for _, w := range roads {
		for _, wn := range w.Nodes {
			used[wn.ID] = true
		}
	}

	nodes := make(map[osm.NodeID]*osm.Node, len(o.Nodes))
	for _, n := range o.Nodes {
		nodes[n.ID] = n
	}

	g := graph.New()
	handles := make(map[osm.NodeID]graph.PointID)
	for _, n := range o.Nodes {
		if !used[n.ID] {
			continue
		}
		if _, dup := handles[n.ID]; dup {
			continue
		}
		handles[n.ID] = g.AddPoint(proj.point(n))
	}

	for _, w := range roads {
		oneWay := w.Tags.Find("oneway") == "yes" || w.Tags.Find("lanes") == "1"
		for i := 1; i < len(w.Nodes); i++ {
			a, okA := handles[w.Nodes[i-1].ID]
			b, okB := handles[w.Nodes[i].ID]
			if !okA || !okB {
				continue
			}
			g.TryAddSegment(a, b, oneWay)
		}
	}

	var buildings []layout.Building
	for _, w := range footprints {
		var pts []geo.Point
		for _, wn := range w.Nodes {
			if n, ok := nodes[wn.ID]; ok {
				pts = append(pts, proj.point(n))
			}
		}
		if len(pts) < 3 {
			log.Debugf("skipping building way %d with %d known nodes", w.ID, len(pts))
			continue
		}
		buildings = append(buildings, layout.Building{
			Base:   geo.NewPolygon(pts...),
			Height: layout.OSMBuildingHeight(levels(w.Tags)),
		})
	}

	log.Infof("imported %d points, %d segments, %d buildings (%.0f x %.0f)",
		g.NumPoints(), g.NumSegments(), len(buildings), proj.width, proj.height)
	return &Result{
		Graph:     g,
		Buildings: buildings,
		Center:    geo.Pt(proj.width/2, proj.height/2),
		Width:     proj.width,
		Height:    proj.height,
	}, nil
}

// levels reads building:levels, defaulting to one storey.
func levels(tags osm.Tags) float64 {
	v := tags.Find("building:levels")
	if v == "" {
		return 1
	}
	l, err := strconv.ParseFloat(v, 64)
	if err != nil || l < 0 {
		return 1
	}
	return l
}

// projection maps lat/lon inside a bound onto a width x height plane with
// north up.
type projection struct {
	bound  orb.Bound
	width  float64
	height float64
}

func newProjection(nodes osm.Nodes) projection {
	first := orb.Point{nodes[0].Lon, nodes[0].Lat}
	b := orb.Bound{Min: first, Max: first}
	for _, n := range nodes[1:] {
		b = b.Extend(orb.Point{n.Lon, n.Lat})
	}

	dLat := b.Top() - b.Bottom()
	dLon := b.Right() - b.Left()
	p := projection{bound: b, height: dLat * metersPerDegree * 10}
	if dLat > 0 {
		p.width = p.height * (dLon / dLat) * math.Cos(b.Top()*math.Pi/180)
	}
	return p
}

func (p projection) point(n *osm.Node) geo.Point {
	return geo.Point{
		X:  invLerp(p.bound.Left(), p.bound.Right(), n.Lon) * p.width,
		Y:  invLerp(p.bound.Top(), p.bound.Bottom(), n.Lat) * p.height,
		ID: int64(n.ID),
	}
}

func invLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return (v - a) / (b - a)
}
