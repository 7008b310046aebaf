// Package render paints world items onto an abstract 2D vector surface.
//
// A Surface only knows primitive shapes; the painters in this package decide
// what a road, a marking or a building looks like.
package render

import "github.com/potemkeen/self-driving-car/pkg/geo"

// Style describes how a primitive is filled and stroked. Empty colors mean
// "do not fill" or "do not stroke".
type Style struct {
	Fill      string    `json:"fill,omitempty"`
	Stroke    string    `json:"stroke,omitempty"`
	LineWidth float64   `json:"line_width,omitempty"`
	Dash      []float64 `json:"dash,omitempty"`
	// FontSize applies to Text only.
	FontSize float64 `json:"font_size,omitempty"`
}

// Surface is a 2D vector drawing backend in world coordinates.
type Surface interface {
	Polygon(pts []geo.Point, s Style)
	Line(a, b geo.Point, s Style)
	Circle(center geo.Point, radius float64, s Style)
	Text(at geo.Point, text string, s Style)
	// SetAlpha sets the opacity applied to subsequent primitives.
	SetAlpha(alpha float64)
}

// Stock styles shared by the world painter.
var (
	RoadStyle     = Style{Fill: "#BBB", Stroke: "#BBB", LineWidth: 15}
	BorderStyle   = Style{Stroke: "white", LineWidth: 4}
	SkeletonStyle = Style{Stroke: "white", LineWidth: 4, Dash: []float64{10, 10}}
	PolygonStyle  = Style{Fill: "rgba(0,0,255,0.3)", Stroke: "blue", LineWidth: 2}
)
