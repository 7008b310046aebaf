package scene2d

import (
	"time"

	"github.com/samber/lo"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/render"
)

// Drawer paints frames onto a surface.
type Drawer interface {
	Draw(s render.Surface, viewPoint geo.Point, showStart bool, radius float64)
	FrameCount() int
}

// View selects what a frame shows.
type View struct {
	Point     geo.Point
	Radius    float64
	ShowStart bool
}

// Recorder is a render.Surface that keeps every primitive it receives.
type Recorder struct {
	Shapes []Shape
	alpha  float64
}

// NewRecorder returns an empty recorder at full opacity.
func NewRecorder() *Recorder {
	return &Recorder{alpha: 1}
}

func (r *Recorder) Polygon(pts []geo.Point, s render.Style) {
	r.add(Shape{Kind: KindPolygon, Points: coords(pts), Style: s})
}

func (r *Recorder) Line(a, b geo.Point, s render.Style) {
	r.add(Shape{Kind: KindLine, Points: coords([]geo.Point{a, b}), Style: s})
}

func (r *Recorder) Circle(center geo.Point, radius float64, s render.Style) {
	r.add(Shape{Kind: KindCircle, Points: coords([]geo.Point{center}), Radius: radius, Style: s})
}

func (r *Recorder) Text(at geo.Point, text string, s render.Style) {
	r.add(Shape{Kind: KindText, Points: coords([]geo.Point{at}), Text: text, Style: s})
}

func (r *Recorder) SetAlpha(alpha float64) {
	r.alpha = alpha
}

func (r *Recorder) add(s Shape) {
	s.Alpha = r.alpha
	r.Shapes = append(r.Shapes, s)
}

// Assemble2D records one draw call of d as a scene.
func Assemble2D(d Drawer, v View) *Scene2D {
	rec := NewRecorder()
	frame := d.FrameCount()
	d.Draw(rec, v.Point, v.ShowStart, v.Radius)

	shapes := rec.Shapes
	if shapes == nil {
		shapes = []Shape{}
	}
	return &Scene2D{
		Metadata: Metadata{
			ViewPoint:   [2]float64{v.Point.X, v.Point.Y},
			Radius:      v.Radius,
			ShowStart:   v.ShowStart,
			Frame:       frame,
			ShapeCount:  len(shapes),
			Counts:      lo.CountValuesBy(shapes, func(s Shape) string { return s.Kind }),
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Shapes: shapes,
	}
}

func coords(pts []geo.Point) [][2]float64 {
	return lo.Map(pts, func(p geo.Point, _ int) [2]float64 { return [2]float64{p.X, p.Y} })
}
