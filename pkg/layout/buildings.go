package layout

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/validation"
)

// DefaultBuildingHeight is the extrusion of generated buildings.
const DefaultBuildingHeight = 200.0

// pruneEps tolerates round-off when comparing building gaps to the spacing.
const pruneEps = 0.001

// Building is an extruded footprint.
type Building struct {
	Base   geo.Polygon `json:"base"`
	Height float64     `json:"height"`
	// Generated marks footprints owned by the pipeline. Buildings without it
	// were placed by an editor or an import and survive regeneration.
	Generated bool `json:"generated,omitempty"`
}

// NewBuilding returns a building with the default height.
func NewBuilding(base geo.Polygon) Building {
	return Building{Base: base, Height: DefaultBuildingHeight}
}

// OSMBuildingHeight converts a storey count into an extrusion height.
func OSMBuildingHeight(levels float64) float64 {
	return 25 + 50*levels
}

// Round returns a copy with base coordinates rounded.
func (b Building) Round(decimals int) Building {
	b.Base = b.Base.Round(decimals)
	return b
}

// PlaceBuildings lines the outside of the road network with footprints.
//
// Wide guide envelopes are unioned around the skeleton; every outline
// segment at least BuildingMinLength long is cut into equal slots separated
// by Spacing, and each slot is buffered into a BuildingWidth rectangle.
// Footprints that overlap, or sit closer than Spacing to an earlier one, are
// dropped in index order.
func PlaceBuildings(segs []geo.Segment, p Params) ([]Building, *validation.Report) {
	report := validation.NewReport()

	guideWidth := p.RoadWidth + p.BuildingWidth + 2*p.Spacing
	guides := lo.Filter(
		geo.Union(Polys(Envelopes(segs, guideWidth, p.RoadRoundness))),
		func(s geo.Segment, _ int) bool { return s.Length() >= p.BuildingMinLength },
	)

	var supports []geo.Segment
	for _, g := range guides {
		supports = append(supports, slotSupports(g, p)...)
	}

	bases := lo.Map(supports, func(s geo.Segment, _ int) geo.Polygon {
		return geo.NewEnvelope(s, p.BuildingWidth, 0).Poly
	})
	candidates := len(bases)
	bases = prune(bases, p.Spacing)

	buildings := lo.Map(bases, func(b geo.Polygon, _ int) Building {
		bld := NewBuilding(b)
		bld.Generated = true
		return bld
	})

	report.AddInfo(validation.Result{
		Level: validation.LevelGeneration,
		Path:  "buildings",
		Message: fmt.Sprintf("placed %d buildings along %d guides (%d pruned)",
			len(buildings), len(guides), candidates-len(buildings)),
	})
	if len(segs) > 0 && len(buildings) == 0 {
		report.AddWarning(validation.Result{
			Level:   validation.LevelGeneration,
			Path:    "buildings",
			Message: "no guide segment is long enough for a building",
			Suggestions: []string{
				"Lower building_min_length",
				"Draw longer road segments",
			},
		})
	}
	log.Debugf("buildings: %d placed, %d candidates", len(buildings), candidates)
	return buildings, report
}

// slotSupports divides a guide into equal building slots. The guide is
// treated as one spacing longer so that n slots and n-1 gaps fill it.
func slotSupports(g geo.Segment, p Params) []geo.Segment {
	length := g.Length() + p.Spacing
	count := int(math.Floor(length / (p.BuildingMinLength + p.Spacing)))
	if count < 1 {
		return nil
	}
	slot := length/float64(count) - p.Spacing
	dir := g.Direction()

	out := make([]geo.Segment, 0, count)
	q1 := g.P1
	q2 := q1.Add(dir.Scale(slot))
	out = append(out, geo.Seg(q1, q2))
	for i := 2; i <= count; i++ {
		q1 = q2.Add(dir.Scale(p.Spacing))
		q2 = q1.Add(dir.Scale(slot))
		out = append(out, geo.Seg(q1, q2))
	}
	return out
}

// prune drops every base that intersects or crowds an earlier kept base.
func prune(bases []geo.Polygon, spacing float64) []geo.Polygon {
	out := append([]geo.Polygon(nil), bases...)
	for i := 0; i < len(out)-1; i++ {
		for j := i + 1; j < len(out); j++ {
			if out[i].IntersectsPoly(out[j]) || out[i].DistanceToPoly(out[j]) < spacing-pruneEps {
				out = append(out[:j], out[j+1:]...)
				j--
			}
		}
	}
	return out
}
