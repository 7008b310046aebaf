// Package layout derives the road surface, building footprints and trees
// of a world from its road skeleton.
//
// Every stage is a pure function of its inputs. Stages that can report
// findings return a *validation.Report alongside their result.
package layout

import (
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

var log = logrus.WithField("module", "layout")

// Params are the world generation parameters.
type Params struct {
	RoadWidth         float64 `json:"road_width"`
	RoadRoundness     int     `json:"road_roundness"`
	BuildingWidth     float64 `json:"building_width"`
	BuildingMinLength float64 `json:"building_min_length"`
	Spacing           float64 `json:"spacing"`
	TreeSize          float64 `json:"tree_size"`
}

// DefaultParams returns the stock generation parameters.
func DefaultParams() Params {
	return Params{
		RoadWidth:         100,
		RoadRoundness:     10,
		BuildingWidth:     150,
		BuildingMinLength: 150,
		Spacing:           50,
		TreeSize:          160,
	}
}

// Envelopes buffers every segment at the given width.
func Envelopes(segs []geo.Segment, width float64, roundness int) []geo.Envelope {
	return lo.Map(segs, func(s geo.Segment, _ int) geo.Envelope {
		return geo.NewEnvelope(s, width, roundness)
	})
}

// Polys extracts the envelope polygons.
func Polys(envs []geo.Envelope) []geo.Polygon {
	return lo.Map(envs, func(e geo.Envelope, _ int) geo.Polygon {
		return e.Poly
	})
}

// RoadEnvelopes produces one road surface envelope per skeleton segment.
func RoadEnvelopes(segs []geo.Segment, p Params) []geo.Envelope {
	return Envelopes(segs, p.RoadWidth, p.RoadRoundness)
}

// RoadBorders returns the outline of the union of the road envelopes: the
// drivable boundary.
func RoadBorders(envs []geo.Envelope) []geo.Segment {
	borders := geo.Union(Polys(envs))
	log.Debugf("road borders: %d segments from %d envelopes", len(borders), len(envs))
	return borders
}

// LaneGuides returns the outline of the union of half-width envelopes, which
// runs along the middle of each lane of a two-lane road.
func LaneGuides(segs []geo.Segment, p Params) []geo.Segment {
	return geo.Union(Polys(Envelopes(segs, p.RoadWidth/2, p.RoadRoundness)))
}
