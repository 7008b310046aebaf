package layout

import (
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"github.com/potemkeen/self-driving-car/pkg/geo"
	"github.com/potemkeen/self-driving-car/pkg/validation"
)

const (
	// DefaultTreeHeight is the extrusion of a tree canopy.
	DefaultTreeHeight = 200.0
	treeBaseSegments  = 16
)

// Tree is a placed tree. Base is the irregular canopy outline used for
// culling and draw ordering; it is rebuilt from Center and Size.
type Tree struct {
	Center geo.Point   `json:"center"`
	Size   float64     `json:"size"`
	Height float64     `json:"height"`
	Base   geo.Polygon `json:"-"`
}

// NewTree builds a tree and its canopy outline.
func NewTree(center geo.Point, size float64) Tree {
	return Tree{
		Center: center,
		Size:   size,
		Height: DefaultTreeHeight,
		Base:   geo.NoisyCircle(center, size/2, treeBaseSegments),
	}
}

// UnmarshalJSON restores the canopy outline.
func (t *Tree) UnmarshalJSON(data []byte) error {
	type plain Tree
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	height := p.Height
	*t = NewTree(p.Center, p.Size)
	if height > 0 {
		t.Height = height
	}
	return nil
}

// Round returns a copy with the center rounded and the outline rebuilt.
func (t Tree) Round(decimals int) Tree {
	r := NewTree(t.Center.Round(decimals), t.Size)
	r.Height = t.Height
	return r
}

// TreeParams tunes rejection sampling. Closeness must exceed Exclusion or no
// candidate can ever be accepted.
type TreeParams struct {
	Size float64
	// Exclusion is the clearance kept from every building and road.
	Exclusion float64
	// Closeness is how near a tree must be to some building or road.
	Closeness float64
	// Spacing is the minimum distance between tree centers.
	Spacing float64
	// MaxMisses stops sampling after that many consecutive rejections.
	MaxMisses int
}

// DefaultTreeParams derives the sampling radii from the tree size.
func DefaultTreeParams(size float64) TreeParams {
	return TreeParams{
		Size:      size,
		Exclusion: size / 2,
		Closeness: size * 2,
		Spacing:   size,
		MaxMisses: 100,
	}
}

// PlaceTrees scatters trees around the road network by rejection sampling
// over the bounding box of the road borders and building bases. A candidate
// is rejected when it falls inside or within Exclusion of any building or
// road envelope, when it is farther than Closeness from all of them, or when
// it is closer than Spacing to a placed tree. Sampling ends after MaxMisses
// consecutive rejections.
func PlaceTrees(
	borders []geo.Segment,
	buildings []Building,
	roads []geo.Envelope,
	tp TreeParams,
	rng *rand.Rand,
) ([]Tree, *validation.Report) {
	report := validation.NewReport()

	var pts []geo.Point
	for _, s := range borders {
		pts = append(pts, s.P1, s.P2)
	}
	for _, b := range buildings {
		pts = append(pts, b.Base.Vertices...)
	}
	if len(pts) == 0 {
		return nil, report
	}
	if tp.Spacing <= 0 || tp.MaxMisses <= 0 {
		report.AddWarning(validation.Result{
			Level:       validation.LevelGeneration,
			Path:        "trees",
			Message:     "tree spacing and miss cap must be positive; no trees placed",
			ActualValue: fmt.Sprintf("spacing=%.1f misses=%d", tp.Spacing, tp.MaxMisses),
		})
		return nil, report
	}
	minPt, maxPt := geo.Bounds(pts)

	illegal := make([]geo.Polygon, 0, len(buildings)+len(roads))
	for _, b := range buildings {
		illegal = append(illegal, b.Base)
	}
	illegal = append(illegal, Polys(roads)...)

	var trees []Tree
	samples, misses := 0, 0
	for misses < tp.MaxMisses {
		samples++
		p := geo.Pt(
			lerp(minPt.X, maxPt.X, rng.Float64()),
			lerp(maxPt.Y, minPt.Y, rng.Float64()),
		)
		if acceptTree(p, illegal, trees, tp) {
			trees = append(trees, NewTree(p, tp.Size))
			misses = 0
			continue
		}
		misses++
	}

	report.AddInfo(validation.Result{
		Level:   validation.LevelGeneration,
		Path:    "trees",
		Message: fmt.Sprintf("placed %d trees from %d samples", len(trees), samples),
	})
	log.Debugf("trees: %d placed from %d samples", len(trees), samples)
	return trees, report
}

func acceptTree(p geo.Point, illegal []geo.Polygon, trees []Tree, tp TreeParams) bool {
	near := false
	for _, poly := range illegal {
		if poly.Contains(p) {
			return false
		}
		d := poly.DistanceToPoint(p)
		if d < tp.Exclusion {
			return false
		}
		if d < tp.Closeness {
			near = true
		}
	}
	if !near {
		return false
	}
	return !lo.SomeBy(trees, func(t Tree) bool {
		return t.Center.Distance(p) < tp.Spacing
	})
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
