package arc

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/partition"
)

// Geometry is the annular sector drawn for one node. Angles are radians,
// radii are pixels.
type Geometry struct {
	StartAngle  float64 `json:"start_angle"`
	EndAngle    float64 `json:"end_angle"`
	InnerRadius float64 `json:"inner_radius"`
	OuterRadius float64 `json:"outer_radius"`
}

// Sweep returns the signed angular extent.
func (g Geometry) Sweep() float64 {
	return g.EndAngle - g.StartAngle
}

// Area returns the sector's area in square pixels.
func (g Geometry) Area() float64 {
	return math.Abs(g.Sweep()) / 2 * math.Abs(g.OuterRadius*g.OuterRadius-g.InnerRadius*g.InnerRadius)
}

// Empty reports whether the sector has no area.
func (g Geometry) Empty() bool {
	return g.Sweep() == 0 || g.OuterRadius == g.InnerRadius
}

// Centroid returns the midpoint of the sector in the same coordinate frame
// as [Path].
func (g Geometry) Centroid() (x, y float64) {
	r := (g.InnerRadius + g.OuterRadius) / 2
	a := (g.StartAngle + g.EndAngle) / 2
	return r * math.Sin(a), -r * math.Cos(a)
}

// Mapper converts partitioned nodes to geometry. It holds no state besides
// its scales and is safe for concurrent use.
type Mapper struct {
	Angle  AngleScale
	Radius RadiusScale
}

// Map returns the clamped geometry for n. A nil node yields the zero value.
func (m Mapper) Map(n *partition.Node) Geometry {
	if n == nil {
		return Geometry{}
	}
	return MapToArc(n.X, n.DX, n.Y, n.DY, m.Angle, m.Radius)
}

// Tau is the full circle in radians. Every angle MapToArc returns lies
// in [0, Tau].
const Tau = 2 * math.Pi

// MapToArc computes geometry from raw partition coordinates. Angles are
// clamped to the scale's range within [0, 2π] and ordered so the sweep is
// never negative.
func MapToArc(x, dx, y, dy float64, angle AngleScale, radius RadiusScale) Geometry {
	lo, hi := angle.Bounds()
	start := clamp(angle.Map(x), lo, hi)
	end := clamp(angle.Map(x+dx), lo, hi)
	if end < start {
		start, end = end, start
	}
	return Geometry{
		StartAngle:  start,
		EndAngle:    end,
		InnerRadius: nonNegative(radius.Map(y)),
		OuterRadius: nonNegative(radius.Map(y + dy)),
	}
}

// clamp bounds v to [lo, hi]; NaN collapses to lo.
func clamp(v, lo, hi float64) float64 {
	switch {
	case math.IsNaN(v), v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
