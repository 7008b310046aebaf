package scene2d

import (
	"fmt"

	"github.com/potemkeen/self-driving-car/pkg/validation"
)

// ValidateScene performs structural validation on a recorded frame.
// It checks the metadata counts and the arity of every shape.
func ValidateScene(s *Scene2D) *validation.Report {
	r := validation.NewReport()

	if s == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelSpatial,
			Message: "scene is nil",
		})
		return r
	}

	validateCounts(s, r)
	validateShapes(s, r)

	return r
}

func validateCounts(s *Scene2D, r *validation.Report) {
	if s.Metadata.ShapeCount != len(s.Shapes) {
		r.AddError(validation.Result{
			Level:       validation.LevelSpatial,
			Message:     fmt.Sprintf("metadata reports %d shapes, scene has %d", s.Metadata.ShapeCount, len(s.Shapes)),
			Path:        "metadata.shape_count",
			ActualValue: s.Metadata.ShapeCount,
			Expected:    fmt.Sprintf("%d", len(s.Shapes)),
		})
	}

	actual := make(map[string]int)
	for _, sh := range s.Shapes {
		actual[sh.Kind]++
	}
	for kind, n := range actual {
		if s.Metadata.Counts[kind] != n {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("metadata counts %d %s shapes, scene has %d", s.Metadata.Counts[kind], kind, n),
				Path:        "metadata.counts." + kind,
				ActualValue: s.Metadata.Counts[kind],
				Expected:    fmt.Sprintf("%d", n),
			})
		}
	}
}

// minPoints is the number of points each kind needs.
var minPoints = map[string]int{
	KindPolygon: 3,
	KindLine:    2,
	KindCircle:  1,
	KindText:    1,
}

func validateShapes(s *Scene2D, r *validation.Report) {
	for i, sh := range s.Shapes {
		path := fmt.Sprintf("shapes[%d]", i)
		want, known := minPoints[sh.Kind]
		if !known {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("shape %d has unknown kind %q", i, sh.Kind),
				Path:        path + ".kind",
				ActualValue: sh.Kind,
			})
			continue
		}
		if len(sh.Points) < want {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("%s shape %d has %d points", sh.Kind, i, len(sh.Points)),
				Path:        path + ".points",
				ActualValue: len(sh.Points),
				Expected:    fmt.Sprintf(">= %d", want),
			})
		}
		if sh.Kind == KindCircle && sh.Radius <= 0 {
			r.AddWarning(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("circle %d has zero or negative radius", i),
				Path:        path + ".radius",
				ActualValue: sh.Radius,
				Expected:    "> 0",
			})
		}
		if sh.Kind == KindText && sh.Text == "" {
			r.AddWarning(validation.Result{
				Level:   validation.LevelSpatial,
				Message: fmt.Sprintf("text shape %d is empty", i),
				Path:    path + ".text",
			})
		}
		if sh.Alpha < 0 || sh.Alpha > 1 {
			r.AddError(validation.Result{
				Level:       validation.LevelSpatial,
				Message:     fmt.Sprintf("shape %d alpha %.2f outside [0, 1]", i, sh.Alpha),
				Path:        path + ".alpha",
				ActualValue: sh.Alpha,
			})
		}
	}
}
