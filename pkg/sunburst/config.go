package sunburst

import (
	"math"

	"github.com/matzehuels/sunburst/pkg/arc"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/partition"
)

// Default chart settings.
const (
	DefaultWidth      = 400.0
	DefaultHeight     = 400.0
	DefaultPadding    = 30.0
	DefaultStartAngle = 0.0
	DefaultEndAngle   = 360.0
)

// Padding is the space in pixels between the frame edge and the chart.
type Padding struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// UniformPadding returns the same padding on every side.
func UniformPadding(p float64) Padding {
	return Padding{Top: p, Right: p, Bottom: p, Left: p}
}

// Config is the chart configuration. Angles are degrees, measured clockwise
// from twelve o'clock.
type Config struct {
	Width       float64             `json:"width"`
	Height      float64             `json:"height"`
	Padding     Padding             `json:"padding"`
	InnerRadius float64             `json:"inner_radius"`
	StartAngle  float64             `json:"start_angle"`
	EndAngle    float64             `json:"end_angle"`
	PadAngle    float64             `json:"pad_angle"`
	RadialScale arc.ScaleKind       `json:"radial_scale"`
	ValueMode   partition.ValueMode `json:"value_mode"`

	// Value extracts node weights; nil means hierarchy.Constant(1).
	Value hierarchy.ValueFunc `json:"-"`
}

// DefaultConfig returns a 400×400 full-circle pie with 30px padding.
func DefaultConfig() Config {
	return Config{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Padding:    UniformPadding(DefaultPadding),
		StartAngle: DefaultStartAngle,
		EndAngle:   DefaultEndAngle,
	}
}

// WithDefaults fills unset dimensions. An end angle of 0 is unset and
// becomes 360, so a lone start angle sweeps to the top of the circle.
func (c Config) WithDefaults() Config {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.EndAngle == 0 {
		c.EndAngle = DefaultEndAngle
	}
	if c.Value == nil {
		c.Value = hierarchy.Constant(1)
	}
	return c
}

// Validate rejects configurations that cannot produce a chart.
func (c Config) Validate() error {
	for name, v := range map[string]float64{
		"width": c.Width, "height": c.Height, "inner radius": c.InnerRadius,
		"pad angle": c.PadAngle, "start angle": c.StartAngle, "end angle": c.EndAngle,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return serrors.New(serrors.ErrCodeInvalidConfig, "%s must be finite", name)
		}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return serrors.New(serrors.ErrCodeInvalidConfig, "width and height must be positive (got %gx%g)", c.Width, c.Height)
	}
	if c.InnerRadius < 0 {
		return serrors.New(serrors.ErrCodeInvalidConfig, "inner radius must be non-negative")
	}
	if c.StartAngle < 0 || c.EndAngle > 360 || c.StartAngle >= c.EndAngle {
		return serrors.New(serrors.ErrCodeInvalidConfig,
			"angles must satisfy 0 <= start < end <= 360 (got %g..%g)", c.StartAngle, c.EndAngle)
	}
	if c.PadAngle < 0 {
		return serrors.New(serrors.ErrCodeInvalidConfig, "pad angle must be non-negative")
	}
	p := c.Padding
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return serrors.New(serrors.ErrCodeInvalidConfig, "padding must be non-negative")
	}
	if r := c.Radius(); c.InnerRadius > r {
		return serrors.New(serrors.ErrCodeInvalidConfig,
			"inner radius %g exceeds the chart radius %g", c.InnerRadius, r)
	}
	return nil
}

// Radius returns the outer radius that fits the padded frame.
func (c Config) Radius() float64 {
	p := c.Padding
	r := math.Min(c.Width-p.Left-p.Right, c.Height-p.Top-p.Bottom) / 2
	return math.Max(0, r)
}

// Center returns the chart centre in frame coordinates.
func (c Config) Center() (x, y float64) {
	r := c.Radius()
	return r + c.Padding.Left, r + c.Padding.Top
}

// Mapper returns the arc mapper for this configuration.
func (c Config) Mapper() arc.Mapper {
	return arc.Mapper{
		Angle:  arc.NewAngleScale(partition.FullCircle, c.StartAngle, c.EndAngle),
		Radius: arc.RadiusScale{Inner: c.InnerRadius, Outer: c.Radius(), Kind: c.RadialScale},
	}
}

// PartitionOptions returns the partition options for this configuration.
func (c Config) PartitionOptions() partition.Options {
	return partition.Options{Value: c.Value, Mode: c.ValueMode, Span: partition.FullCircle}
}
