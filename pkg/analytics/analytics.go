// Package analytics measures a generated world and flags spatial problems
// such as disconnected roads or lights that control no intersection.
package analytics

import (
	"github.com/samber/lo"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/graph"
	"github.com/potemkeen/self-driving-car/pkg/layout"
	"github.com/potemkeen/self-driving-car/pkg/marking"
	"github.com/potemkeen/self-driving-car/pkg/routing"
	"github.com/potemkeen/self-driving-car/pkg/validation"
	"github.com/potemkeen/self-driving-car/pkg/world"
)

// Resolve computes world statistics and a spatial validation report.
func Resolve(w *world.World) (*Stats, *validation.Report) {
	report := validation.NewReport()
	segs := w.Graph.Segments()
	segLen := func(s geo.Segment) float64 { return s.Length() }

	network := NetworkStats{
		Points:         w.Graph.NumPoints(),
		Segments:       len(segs),
		OneWaySegments: lo.CountBy(segs, func(s geo.Segment) bool { return s.OneWay }),
		RoadLength:     lo.SumBy(segs, segLen),
		BorderLength:   lo.SumBy(w.RoadBorders, segLen),
		Intersections:  len(w.Intersections()),
		DeadEnds: lo.CountBy(w.Graph.PointIDs(), func(id graph.PointID) bool {
			return w.Graph.Degree(id) == 1
		}),
		Components: len(routing.Components(segs)),
	}

	generated := lo.CountBy(w.Buildings, func(b layout.Building) bool { return b.Generated })
	buildings := BuildingStats{
		Total:     len(w.Buildings),
		Generated: generated,
		Placed:    len(w.Buildings) - generated,
		FootprintArea: lo.SumBy(w.Buildings, func(b layout.Building) float64 {
			return b.Base.Area()
		}),
	}

	groups := world.LightGroups(w.Intersections(), w.Markings)
	stats := &Stats{
		Network:   network,
		Buildings: buildings,
		Trees:     len(w.Trees),
		Markings: lo.CountValuesBy(w.Markings, func(m *marking.Marking) string {
			return string(m.Kind)
		}),
		Lights: lo.Map(groups, func(g world.LightGroup, _ int) LightGroup {
			return LightGroup{
				Intersection: [2]float64{g.Intersection.X, g.Intersection.Y},
				Lights:       len(g.Lights),
			}
		}),
	}
	if pts := w.Graph.Points(); len(pts) > 0 {
		minPt, maxPt := geo.Bounds(pts)
		stats.Bounds = &Bounds{
			Min: [2]float64{minPt.X, minPt.Y},
			Max: [2]float64{maxPt.X, maxPt.Y},
		}
	}

	validateSpatial(w, stats, groups, report)
	return stats, report
}
