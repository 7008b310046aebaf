// Package world owns a road skeleton and everything derived from it: road
// surfaces, borders, lane guides, buildings, trees, markings, the traffic
// light schedule and an optional race corridor.
//
// A World is not safe for concurrent use. Callers serialize access.
package world

import (
	"github.com/sirupsen/logrus"

	"github.com/potemkeen/self-driving-car/pkg/config"
	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/graph"
	"github.com/potemkeen/self-driving-car/pkg/layout"
	"github.com/potemkeen/self-driving-car/pkg/marking"
	"github.com/potemkeen/self-driving-car/pkg/routing"
)

var log = logrus.WithField("module", "world")

// Car is anything the world paints as a vehicle.
type Car interface {
	Polygon() geo.Polygon
	Color() string
}

// World is the road network and its derived geometry.
type World struct {
	Graph  *graph.Graph
	Params layout.Params
	Lights LightTiming
	Seed   uint64

	Envelopes   []geo.Envelope
	RoadBorders []geo.Segment
	LaneGuides  []geo.Segment
	Buildings   []layout.Building
	Trees       []layout.Tree
	Markings    []*marking.Marking

	Cars     []Car
	BestCar  Car
	Corridor *routing.Corridor

	Zoom   float64
	Offset geo.Point

	frameCount    int
	generatedHash string
}

// Option customizes a new World.
type Option func(*World)

// WithParams sets the generation parameters.
func WithParams(p layout.Params) Option {
	return func(w *World) { w.Params = p }
}

// WithLights sets the light cycle timing.
func WithLights(t LightTiming) Option {
	return func(w *World) { w.Lights = t }
}

// WithSeed sets the tree placement seed.
func WithSeed(seed uint64) Option {
	return func(w *World) { w.Seed = seed }
}

// New creates a world around g. A nil graph starts empty.
func New(g *graph.Graph, opts ...Option) *World {
	if g == nil {
		g = graph.New()
	}
	w := &World{
		Graph:  g,
		Params: layout.DefaultParams(),
		Lights: DefaultLightTiming(),
		Seed:   1,
		Zoom:   1,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// FromConfig creates a world using the generation and light settings of cfg.
func FromConfig(g *graph.Graph, cfg *config.Config) *World {
	return New(g,
		WithParams(ParamsFromConfig(cfg)),
		WithLights(LightTiming{
			Green:         cfg.Lights.Green,
			Yellow:        cfg.Lights.Yellow,
			FramesPerTick: cfg.Lights.FramesPerTick,
		}),
		WithSeed(cfg.World.Seed),
	)
}

// ParamsFromConfig extracts the generation parameters from cfg.
func ParamsFromConfig(cfg *config.Config) layout.Params {
	return layout.Params{
		RoadWidth:         cfg.World.RoadWidth,
		RoadRoundness:     cfg.World.RoadRoundness,
		BuildingWidth:     cfg.World.BuildingWidth,
		BuildingMinLength: cfg.World.BuildingMinLength,
		Spacing:           cfg.World.Spacing,
		TreeSize:          cfg.World.TreeSize,
	}
}

// AddMarking appends m.
func (w *World) AddMarking(m *marking.Marking) {
	w.Markings = append(w.Markings, m)
}

// RemoveMarking removes m by identity and reports whether it was present.
func (w *World) RemoveMarking(m *marking.Marking) bool {
	for i, cur := range w.Markings {
		if cur == m {
			w.Markings = append(w.Markings[:i], w.Markings[i+1:]...)
			return true
		}
	}
	return false
}

// AddBuilding places a building that survives regeneration.
func (w *World) AddBuilding(b layout.Building) {
	b.Generated = false
	w.Buildings = append(w.Buildings, b)
}

// FrameCount is the number of draw calls so far.
func (w *World) FrameCount() int {
	return w.frameCount
}

// Dispose empties the graph and drops every derived and placed item.
func (w *World) Dispose() {
	w.Graph.Dispose()
	w.Envelopes = nil
	w.RoadBorders = nil
	w.LaneGuides = nil
	w.Buildings = nil
	w.Trees = nil
	w.Markings = nil
	w.Corridor = nil
	w.generatedHash = ""
}
