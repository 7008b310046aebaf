package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/world"
)

// exportGeoJSON converts the world to planar GeoJSON: road segments as
// lines, buildings as polygons, markings as points.
func exportGeoJSON(w *world.World) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, s := range w.Graph.Segments() {
		f := geojson.NewFeature(orb.LineString{orbPoint(s.P1), orbPoint(s.P2)})
		f.Properties["layer"] = "road"
		f.Properties["one_way"] = s.OneWay
		f.Properties["length"] = s.Length()
		fc.Append(f)
	}

	for _, b := range w.Buildings {
		if b.Base.Len() < 3 {
			continue
		}
		f := geojson.NewFeature(orb.Polygon{ring(b.Base)})
		f.Properties["layer"] = "building"
		f.Properties["height"] = b.Height
		f.Properties["generated"] = b.Generated
		fc.Append(f)
	}

	for _, t := range w.Trees {
		f := geojson.NewFeature(orbPoint(t.Center))
		f.Properties["layer"] = "tree"
		f.Properties["size"] = t.Size
		fc.Append(f)
	}

	for _, m := range w.Markings {
		f := geojson.NewFeature(orbPoint(m.Center))
		f.Properties["layer"] = "marking"
		f.Properties["kind"] = string(m.Kind)
		if m.IsLight() {
			f.Properties["state"] = string(m.State)
		}
		fc.Append(f)
	}

	return fc
}

func orbPoint(p geo.Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// ring closes the polygon outline as GeoJSON requires.
func ring(p geo.Polygon) orb.Ring {
	r := make(orb.Ring, 0, p.Len()+1)
	for _, v := range p.Vertices {
		r = append(r, orbPoint(v))
	}
	return append(r, r[0])
}
