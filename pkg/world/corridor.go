package world

import (
	"fmt"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/marking"
	"github.com/potemkeen/self-driving-car/pkg/routing"
)

// ErrNoTarget is returned when a corridor is requested without a target
// marking.
var ErrNoTarget = fmt.Errorf("world: no target marking: %w", routing.ErrNoRoute)

// GenerateCorridor routes from start to target over the graph and stores
// the result as the world corridor.
func (w *World) GenerateCorridor(start, target geo.Point, extendEnd bool) (*routing.Corridor, error) {
	c, err := routing.GenerateCorridor(w.Graph, start, target, routing.Options{
		RoadWidth: w.Params.RoadWidth,
		Roundness: w.Params.RoadRoundness,
		ExtendEnd: extendEnd,
	})
	if err != nil {
		w.Corridor = nil
		return nil, err
	}
	w.Corridor = c
	return c, nil
}

// CorridorToTarget routes from start to the first Target marking.
func (w *World) CorridorToTarget(start geo.Point, extendEnd bool) (*routing.Corridor, error) {
	targets := marking.Filter(w.Markings, marking.Target)
	if len(targets) == 0 {
		return nil, ErrNoTarget
	}
	return w.GenerateCorridor(start, targets[0].Center, extendEnd)
}
