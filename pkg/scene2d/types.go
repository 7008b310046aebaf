// Package scene2d records a world draw call as a list of 2D shapes that a
// remote renderer can replay.
package scene2d

import "github.com/potemkeen/self-driving-car/pkg/render"

// Scene2D is one recorded frame, ready for a remote 2D renderer.
type Scene2D struct {
	Metadata Metadata `json:"metadata"`
	Shapes   []Shape  `json:"shapes"`
}

// Metadata describes how the frame was drawn.
type Metadata struct {
	ViewPoint   [2]float64     `json:"view_point"`
	Radius      float64        `json:"radius"`
	ShowStart   bool           `json:"show_start"`
	Frame       int            `json:"frame"`
	ShapeCount  int            `json:"shape_count"`
	Counts      map[string]int `json:"counts"`
	GeneratedAt string         `json:"generated_at"`
}

// Shape kinds.
const (
	KindPolygon = "polygon"
	KindLine    = "line"
	KindCircle  = "circle"
	KindText    = "text"
)

// Shape is a single drawing primitive.
type Shape struct {
	Kind   string       `json:"kind"`
	Points [][2]float64 `json:"points"`
	Radius float64      `json:"radius,omitempty"`
	Text   string       `json:"text,omitempty"`
	Style  render.Style `json:"style"`
	Alpha  float64      `json:"alpha"`
}
