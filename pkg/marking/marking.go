// Package marking defines the typed zone annotations placed on the road
// network: crossings, traffic lights, parking bays, stop and yield lines,
// and the start/target anchors used in races.
package marking

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/potemkeen/self-driving-car/pkg/geo"
)

// ErrUnknownKind is returned by New for an unrecognised discriminant.
var ErrUnknownKind = errors.New("marking: unknown kind")

// Kind discriminates marking variants. Its value is the serialized type tag.
type Kind string

const (
	Crossing Kind = "crossing"
	Light    Kind = "light"
	Generic  Kind = "marking"
	Parking  Kind = "parking"
	Start    Kind = "start"
	Stop     Kind = "stop"
	Target   Kind = "target"
	Yield    Kind = "yield"
)

// Kinds lists every known kind.
var Kinds = []Kind{Crossing, Light, Generic, Parking, Start, Stop, Target, Yield}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// LightHeight is the fixed depth of a traffic light zone.
const LightHeight = 18

// LightState is the signal shown by a Light marking.
type LightState string

const (
	Off    LightState = "off"
	Red    LightState = "red"
	Yellow LightState = "yellow"
	Green  LightState = "green"
)

// Marking is a zone anchored at Center and oriented along Direction.
// Support and Poly are derived from the anchor by New.
type Marking struct {
	Kind      Kind
	Center    geo.Point
	Direction geo.Point
	Width     float64
	Height    float64
	Support   geo.Segment
	Poly      geo.Polygon
	// State is only meaningful for Light markings.
	State LightState
}

// New builds a marking of the given kind. The support segment runs through
// center along direction, height long; the poly buffers it by width.
func New(kind Kind, center, direction geo.Point, width, height float64) (*Marking, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	if kind == Light {
		height = LightHeight
	}
	a := direction.Angle()
	support := geo.Seg(center.Translate(a, height/2), center.Translate(a, -height/2))
	m := &Marking{
		Kind:      kind,
		Center:    center,
		Direction: direction,
		Width:     width,
		Height:    height,
		Support:   support,
		Poly:      geo.NewEnvelope(support, width, 0).Poly,
	}
	if kind == Light {
		m.State = Off
	}
	return m, nil
}

// IsLight reports whether the marking carries signal state.
func (m *Marking) IsLight() bool {
	return m.Kind == Light
}

// Borders returns the poly edges a car must not cross while the marking
// applies: the stop line for Stop and Yield, both side lines for Crossing
// and Parking, nothing otherwise.
func (m *Marking) Borders() []geo.Segment {
	edges := m.Poly.Edges()
	if len(edges) < 4 {
		return nil
	}
	switch m.Kind {
	case Stop, Yield:
		return []geo.Segment{edges[2]}
	case Crossing, Parking:
		return []geo.Segment{edges[0], edges[2]}
	}
	return nil
}

// wire is the serialized marking.
type wire struct {
	Center    geo.Point `json:"c"`
	Direction geo.Point `json:"dv"`
	Width     float64   `json:"w"`
	Height    float64   `json:"h"`
	Kind      Kind      `json:"t"`
}

// MarshalJSON encodes the anchor and kind only; geometry is derived.
func (m *Marking) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{
		Center:    m.Center,
		Direction: m.Direction,
		Width:     m.Width,
		Height:    m.Height,
		Kind:      m.Kind,
	})
}

// UnmarshalJSON rebuilds the marking through New.
func (m *Marking) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	built, err := New(w.Kind, geo.Pt(w.Center.X, w.Center.Y), geo.Pt(w.Direction.X, w.Direction.Y), w.Width, w.Height)
	if err != nil {
		return err
	}
	*m = *built
	return nil
}

// Round returns a copy with the anchor rounded to the given decimals and the
// geometry rebuilt.
func (m *Marking) Round(decimals int) *Marking {
	r, err := New(m.Kind, m.Center.Round(decimals), m.Direction.Round(decimals), m.Width, m.Height)
	if err != nil {
		return m
	}
	r.State = m.State
	return r
}

// Filter returns the markings of the given kind, in order.
func Filter(ms []*Marking, kind Kind) []*Marking {
	var out []*Marking
	for _, m := range ms {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}
