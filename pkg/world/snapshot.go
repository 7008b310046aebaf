package world

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/graph"
	"github.com/potemkeen/self-driving-car/pkg/layout"
	"github.com/potemkeen/self-driving-car/pkg/marking"
)

// SnapshotDecimals is the coordinate precision of saved worlds.
const SnapshotDecimals = 3

// Snapshot is the serialized world.
type Snapshot struct {
	Graph             *graph.Graph       `json:"g" jsonschema:"description=Road skeleton: points and segments"`
	RoadWidth         float64            `json:"rw"`
	RoadRoundness     int                `json:"rr"`
	BuildingWidth     float64            `json:"bw"`
	BuildingMinLength float64            `json:"bml"`
	Spacing           float64            `json:"s"`
	TreeSize          float64            `json:"ts"`
	Seed              uint64             `json:"seed,omitempty"`
	Envelopes         []geo.Envelope     `json:"e"`
	RoadBorders       []geo.Segment      `json:"rb"`
	LaneGuides        []geo.Segment      `json:"lg"`
	Buildings         []layout.Building  `json:"b"`
	Trees             []layout.Tree      `json:"t"`
	Markings          []*marking.Marking `json:"m"`
	Zoom              float64            `json:"z"`
	Offset            geo.Point          `json:"o"`
}

// Snapshot captures the world with coordinates rounded to
// SnapshotDecimals.
func (w *World) Snapshot() *Snapshot {
	roundSeg := func(s geo.Segment, _ int) geo.Segment { return s.Round(SnapshotDecimals) }
	return &Snapshot{
		Graph:             w.Graph.Round(SnapshotDecimals),
		RoadWidth:         w.Params.RoadWidth,
		RoadRoundness:     w.Params.RoadRoundness,
		BuildingWidth:     w.Params.BuildingWidth,
		BuildingMinLength: w.Params.BuildingMinLength,
		Spacing:           w.Params.Spacing,
		TreeSize:          w.Params.TreeSize,
		Seed:              w.Seed,
		Envelopes: lo.Map(w.Envelopes, func(e geo.Envelope, _ int) geo.Envelope {
			return geo.Envelope{
				Skeleton: e.Skeleton.Round(SnapshotDecimals),
				Poly:     e.Poly.Round(SnapshotDecimals),
			}
		}),
		RoadBorders: lo.Map(w.RoadBorders, roundSeg),
		LaneGuides:  lo.Map(w.LaneGuides, roundSeg),
		Buildings: lo.Map(w.Buildings, func(b layout.Building, _ int) layout.Building {
			return b.Round(SnapshotDecimals)
		}),
		Trees: lo.Map(w.Trees, func(t layout.Tree, _ int) layout.Tree {
			return t.Round(SnapshotDecimals)
		}),
		Markings: lo.Map(w.Markings, func(m *marking.Marking, _ int) *marking.Marking {
			return m.Round(SnapshotDecimals)
		}),
		Zoom:   w.Zoom,
		Offset: w.Offset.Round(SnapshotDecimals),
	}
}

// MarshalJSON encodes the rounded snapshot of the world.
func (w *World) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Snapshot())
}

// FromSnapshot rebuilds a world. Derived collections are restored as saved;
// if the graph has segments but no envelopes were saved, the world reports
// NeedsRegeneration.
func FromSnapshot(snap *Snapshot, opts ...Option) *World {
	w := New(snap.Graph, opts...)
	w.Params = layout.Params{
		RoadWidth:         snap.RoadWidth,
		RoadRoundness:     snap.RoadRoundness,
		BuildingWidth:     snap.BuildingWidth,
		BuildingMinLength: snap.BuildingMinLength,
		Spacing:           snap.Spacing,
		TreeSize:          snap.TreeSize,
	}
	if w.Params == (layout.Params{}) {
		w.Params = layout.DefaultParams()
	}
	if snap.Seed != 0 {
		w.Seed = snap.Seed
	}
	w.Envelopes = snap.Envelopes
	w.RoadBorders = snap.RoadBorders
	w.LaneGuides = snap.LaneGuides
	w.Buildings = snap.Buildings
	w.Trees = snap.Trees
	w.Markings = snap.Markings
	w.Zoom = snap.Zoom
	if w.Zoom == 0 {
		w.Zoom = 1
	}
	w.Offset = snap.Offset

	if w.Graph.NumSegments() == 0 || len(w.Envelopes) > 0 {
		w.generatedHash = w.Graph.Hash()
	}
	log.Debugf("loaded snapshot: %d points, %d segments, %d markings",
		w.Graph.NumPoints(), w.Graph.NumSegments(), len(w.Markings))
	return w
}

// Load decodes a JSON snapshot into a world.
func Load(data []byte, opts ...Option) (*World, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding world snapshot: %w", err)
	}
	return FromSnapshot(&snap, opts...), nil
}
