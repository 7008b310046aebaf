package analytics

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/marking"
	"github.com/potemkeen/self-driving-car/pkg/validation"
	"github.com/potemkeen/self-driving-car/pkg/world"
)

// validateSpatial runs the spatial checks on a measured world.
func validateSpatial(w *world.World, s *Stats, groups []world.LightGroup, report *validation.Report) {
	validateFreshness(w, report)
	validateConnectivity(s, report)
	validateLights(w, groups, report)
	validateMarkingsOnRoad(w, report)
	validateRaceMarkings(w, report)
}

func validateFreshness(w *world.World, report *validation.Report) {
	if w.Graph.NumSegments() > 0 && w.NeedsRegeneration() {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     "derived geometry is stale: the road graph changed since the last generation",
			Path:        "graph",
			Suggestions: []string{"Run generate"},
		})
	}
}

func validateConnectivity(s *Stats, report *validation.Report) {
	if s.Network.Components > 1 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("road network has %d disconnected parts", s.Network.Components),
			Path:        "graph.segments",
			ActualValue: s.Network.Components,
			Expected:    "1",
			Suggestions: []string{"Connect the parts so every target is reachable"},
		})
	}
	if s.Network.DeadEnds > 0 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%d dead ends", s.Network.DeadEnds),
			Path:        "graph.points",
			ActualValue: s.Network.DeadEnds,
		})
	}
}

func validateLights(w *world.World, groups []world.LightGroup, report *validation.Report) {
	lights := marking.Filter(w.Markings, marking.Light)
	grouped := lo.SumBy(groups, func(g world.LightGroup) int { return len(g.Lights) })
	if len(lights) > grouped {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%d lights control no intersection and stay off", len(lights)-grouped),
			Path:        "markings",
			Suggestions: []string{"Join at least three roads where lights are placed"},
		})
	}
	for _, g := range groups {
		if len(g.Lights) == 1 {
			report.AddInfo(validation.Result{
				Level: validation.LevelSpatial,
				Message: fmt.Sprintf("intersection at (%.0f, %.0f) has a single light that never turns red",
					g.Intersection.X, g.Intersection.Y),
				Path: "markings",
			})
		}
	}
}

func validateMarkingsOnRoad(w *world.World, report *validation.Report) {
	if len(w.Envelopes) == 0 {
		return
	}
	off := lo.Filter(w.Markings, func(m *marking.Marking, _ int) bool {
		return !lo.SomeBy(w.Envelopes, func(e geo.Envelope) bool { return e.Poly.Contains(m.Center) })
	})
	if len(off) > 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("%d markings lie off the road surface", len(off)),
			Path:        "markings",
			ActualValue: len(off),
		})
	}
}

func validateRaceMarkings(w *world.World, report *validation.Report) {
	targets := marking.Filter(w.Markings, marking.Target)
	starts := marking.Filter(w.Markings, marking.Start)
	if len(targets) > 0 && len(starts) == 0 {
		report.AddInfo(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "target marking without a start marking; races start at the default position",
			Path:    "markings",
		})
	}
	if len(targets) > 1 {
		report.AddInfo(validation.Result{
			Level:   validation.LevelSpatial,
			Message: fmt.Sprintf("%d target markings; races use the first", len(targets)),
			Path:    "markings",
		})
	}
}
