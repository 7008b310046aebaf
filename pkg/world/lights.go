package world

import (
	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/marking"
)

// LightTiming is the light cycle in ticks. A tick lasts FramesPerTick draw
// calls.
type LightTiming struct {
	Green         int `json:"green"`
	Yellow        int `json:"yellow"`
	FramesPerTick int `json:"frames_per_tick"`
}

// DefaultLightTiming is two green ticks, one yellow, sixty frames a tick.
func DefaultLightTiming() LightTiming {
	return LightTiming{Green: 2, Yellow: 1, FramesPerTick: 60}
}

func (t LightTiming) period() int {
	return t.Green + t.Yellow
}

// LightGroup is the set of lights controlling one intersection.
type LightGroup struct {
	Intersection geo.Point
	Lights       []*marking.Marking
}

// LightGroups assigns every light marking to its nearest intersection.
// Groups follow intersection order; lights keep marking order. Lights are
// ungrouped when the graph has no intersection.
func LightGroups(intersections []geo.Point, markings []*marking.Marking) []LightGroup {
	if len(intersections) == 0 {
		return nil
	}
	groups := make([]LightGroup, len(intersections))
	for i, p := range intersections {
		groups[i].Intersection = p
	}
	for _, m := range marking.Filter(markings, marking.Light) {
		i := geo.NearestPoint(m.Center, intersections, 0)
		if i < 0 {
			continue
		}
		groups[i].Lights = append(groups[i].Lights, m)
	}
	out := groups[:0]
	for _, g := range groups {
		if len(g.Lights) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// Phase returns the state of each of k lights sharing an intersection at
// the given tick. The group takes turns: one light runs green then yellow
// while all others are red.
func Phase(k, tick int, t LightTiming) []marking.LightState {
	states := make([]marking.LightState, k)
	for i := range states {
		states[i] = marking.Red
	}
	period := t.period()
	if k == 0 || period <= 0 || t.Green < 0 || t.Yellow < 0 {
		return states
	}
	cycle := k * period
	c := tick % cycle
	if c < 0 {
		c += cycle
	}
	active := c / period
	if c%period < t.Green {
		states[active] = marking.Green
	} else {
		states[active] = marking.Yellow
	}
	return states
}

// LightTick converts the draw count into the coarse light tick.
func (w *World) LightTick() int {
	fpt := w.Lights.FramesPerTick
	if fpt <= 0 {
		fpt = 1
	}
	return w.frameCount / fpt
}

// UpdateLights sets the state of every grouped light for the current tick.
func (w *World) UpdateLights() {
	tick := w.LightTick()
	for _, g := range LightGroups(w.Intersections(), w.Markings) {
		for i, s := range Phase(len(g.Lights), tick, w.Lights) {
			g.Lights[i].State = s
		}
	}
}

// Tick advances the draw counter without painting.
func (w *World) Tick() {
	w.UpdateLights()
	w.frameCount++
}
