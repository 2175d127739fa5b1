package arc

import "math"

// AngleScale maps [0, Span] linearly onto [Start, End] radians.
type AngleScale struct {
	Span       float64
	Start, End float64
}

// NewAngleScale builds a scale over span from start to end degrees.
func NewAngleScale(span, startDeg, endDeg float64) AngleScale {
	return AngleScale{Span: span, Start: Radians(startDeg), End: Radians(endDeg)}
}

// Map returns the angle for position x.
func (s AngleScale) Map(x float64) float64 {
	if s.Span == 0 {
		return s.Start
	}
	return s.Start + (s.End-s.Start)*x/s.Span
}

// Bounds returns the range as (low, high), intersected with [0, 2π].
// A range entirely outside the circle collapses to the nearest edge.
func (s AngleScale) Bounds() (lo, hi float64) {
	lo = clamp(math.Min(s.Start, s.End), 0, Tau)
	hi = clamp(math.Max(s.Start, s.End), 0, Tau)
	return lo, hi
}

// ScaleKind selects the radial interpolation.
type ScaleKind int

const (
	// Sqrt preserves area proportionality across rings.
	Sqrt ScaleKind = iota
	// Linear gives every ring the same thickness in pixels.
	Linear
)

// String returns the kind's configuration name.
func (k ScaleKind) String() string {
	if k == Linear {
		return "linear"
	}
	return "sqrt"
}

// ParseScaleKind maps "sqrt" and "linear" to a ScaleKind.
func ParseScaleKind(s string) (ScaleKind, bool) {
	switch s {
	case "", "sqrt":
		return Sqrt, true
	case "linear":
		return Linear, true
	}
	return Sqrt, false
}

// RadiusScale maps normalized depth in [0, 1] onto [Inner, Outer] pixels.
type RadiusScale struct {
	Inner, Outer float64
	Kind         ScaleKind
}

// Map returns the radius for depth y. Negative depths map to Inner.
func (s RadiusScale) Map(y float64) float64 {
	if y <= 0 {
		return s.Inner
	}
	t := y
	if s.Kind == Sqrt {
		t = math.Sqrt(y)
	}
	return s.Inner + (s.Outer-s.Inner)*t
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
