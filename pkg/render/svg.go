package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

// Viewport maps world coordinates onto an image of Width x Height pixels
// centered on Center and scaled by Zoom.
type Viewport struct {
	Width  int
	Height int
	Center geo.Point
	Zoom   float64
}

// Project converts a world point into image coordinates.
func (v Viewport) Project(p geo.Point) (int, int) {
	z := v.Zoom
	if z <= 0 {
		z = 1
	}
	x := float64(v.Width)/2 + (p.X-v.Center.X)*z
	y := float64(v.Height)/2 + (p.Y-v.Center.Y)*z
	return int(math.Round(x)), int(math.Round(y))
}

func (v Viewport) scale(d float64) float64 {
	if v.Zoom <= 0 {
		return d
	}
	return d * v.Zoom
}

// SVGSurface writes primitives as SVG elements.
type SVGSurface struct {
	canvas *svg.SVG
	view   Viewport
	alpha  float64
}

// NewSVGSurface starts an SVG document on w.
func NewSVGSurface(w io.Writer, view Viewport) *SVGSurface {
	c := svg.New(w)
	c.Start(view.Width, view.Height)
	c.Rect(0, 0, view.Width, view.Height, "fill:#2A5")
	return &SVGSurface{canvas: c, view: view, alpha: 1}
}

// Close ends the SVG document.
func (s *SVGSurface) Close() {
	s.canvas.End()
}

func (s *SVGSurface) Polygon(pts []geo.Point, st Style) {
	if len(pts) < 3 {
		return
	}
	xs, ys := s.project(pts)
	s.canvas.Polygon(xs, ys, s.css(st, true))
}

func (s *SVGSurface) Line(a, b geo.Point, st Style) {
	x1, y1 := s.view.Project(a)
	x2, y2 := s.view.Project(b)
	s.canvas.Line(x1, y1, x2, y2, s.css(st, false)+";stroke-linecap:round")
}

func (s *SVGSurface) Circle(center geo.Point, radius float64, st Style) {
	x, y := s.view.Project(center)
	r := int(math.Round(s.view.scale(radius)))
	s.canvas.Circle(x, y, r, s.css(st, true))
}

func (s *SVGSurface) Text(at geo.Point, text string, st Style) {
	if text == "" {
		return
	}
	x, y := s.view.Project(at)
	style := s.css(Style{Fill: st.Fill}, true)
	size := s.view.scale(st.FontSize)
	s.canvas.Text(x, y, text, fmt.Sprintf("%s;font-size:%.0fpx;text-anchor:middle;dominant-baseline:middle", style, size))
}

func (s *SVGSurface) SetAlpha(alpha float64) {
	s.alpha = alpha
}

func (s *SVGSurface) project(pts []geo.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = s.view.Project(p)
	}
	return xs, ys
}

// css renders a Style as an inline style attribute.
func (s *SVGSurface) css(st Style, fill bool) string {
	var parts []string
	if fill && st.Fill != "" {
		parts = append(parts, "fill:"+st.Fill)
	} else {
		parts = append(parts, "fill:none")
	}
	if st.Stroke != "" {
		parts = append(parts, "stroke:"+st.Stroke)
		parts = append(parts, fmt.Sprintf("stroke-width:%g", s.view.scale(st.LineWidth)))
	}
	if len(st.Dash) > 0 {
		dash := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			dash[i] = fmt.Sprintf("%g", s.view.scale(d))
		}
		parts = append(parts, "stroke-dasharray:"+strings.Join(dash, ","))
	}
	if s.alpha < 1 {
		parts = append(parts, fmt.Sprintf("opacity:%g", s.alpha))
	}
	return strings.Join(parts, ";")
}

func rgb(r, g, b int) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, b)
}
