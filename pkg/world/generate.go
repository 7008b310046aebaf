package world

import (
	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/layout"
	"github.com/potemkeen/self-driving-car/pkg/validation"
)

// Generate recomputes envelopes, road borders, lane guides, generated
// buildings and trees from the graph. Buildings placed by an editor or an
// import are kept as they are.
func (w *World) Generate() *validation.Report {
	report := validation.NewReport()
	segs := w.Graph.Segments()

	w.Envelopes = layout.RoadEnvelopes(segs, w.Params)
	w.RoadBorders = layout.RoadBorders(w.Envelopes)
	w.LaneGuides = layout.LaneGuides(segs, w.Params)

	placed := lo.Reject(w.Buildings, func(b layout.Building, _ int) bool { return b.Generated })
	generated, bReport := layout.PlaceBuildings(segs, w.Params)
	report.Merge(bReport)
	w.Buildings = append(placed, generated...)

	rng := rand.New(rand.NewSource(w.Seed))
	trees, tReport := layout.PlaceTrees(
		w.RoadBorders,
		w.Buildings,
		w.Envelopes,
		layout.DefaultTreeParams(w.Params.TreeSize),
		rng,
	)
	report.Merge(tReport)
	w.Trees = trees

	w.generatedHash = w.Graph.Hash()
	log.Infof("generated: %d envelopes, %d borders, %d buildings, %d trees",
		len(w.Envelopes), len(w.RoadBorders), len(w.Buildings), len(w.Trees))
	return report
}

// NeedsRegeneration reports whether the graph changed since the last
// Generate or Load.
func (w *World) NeedsRegeneration() bool {
	return w.Graph.Hash() != w.generatedHash
}

// Refresh regenerates if the graph changed. It returns nil when nothing was
// done.
func (w *World) Refresh() *validation.Report {
	if !w.NeedsRegeneration() {
		return nil
	}
	return w.Generate()
}

// Intersections returns the graph points joining more than two segments.
func (w *World) Intersections() []geo.Point {
	return w.Graph.Intersections()
}
