// Package pipeline provides the load → layout → render pipeline shared by
// the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a hierarchy from a file, raw bytes, an inline tree, or the
//     built-in sample
//  2. Layout: partition the hierarchy and map every node to arc geometry
//  3. Render: produce SVG, PNG, PDF or JSON, one goroutine per format
//
// Layouts and artifacts are cached by content hash, so re-rendering the same
// input with different colours skips the layout stage.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "flare.json",
//	    Value:   "size",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/arc"
	"github.com/matzehuels/sunburst/pkg/cache"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/httputil"
	"github.com/matzehuels/sunburst/pkg/partition"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultStrokeWidth is the separator width between slices.
	DefaultStrokeWidth = 1.0

	// DefaultStroke is the separator colour between slices.
	DefaultStroke = "white"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// View constants.
const (
	ViewSunburst = "sunburst"
	ViewNodelink = "nodelink"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidViews is the set of supported views.
var ValidViews = map[string]bool{
	ViewSunburst: true,
	ViewNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. At most one of Input, Data or Hierarchy is used, in
	// that order of precedence; none selects the sample tree.
	Input     string          `json:"-"`
	Data      []byte          `json:"-"`
	Format    string          `json:"format,omitempty"`
	Hierarchy *hierarchy.Node `json:"hierarchy,omitempty"`

	// Fetcher downloads http(s) Inputs. Nil uses an uncached client.
	Fetcher *httputil.Client `json:"-"`

	// Layout options
	Width       float64           `json:"width,omitempty"`
	Height      float64           `json:"height,omitempty"`
	Padding     *sunburst.Padding `json:"padding,omitempty"`
	InnerRadius float64           `json:"inner_radius,omitempty"`
	StartAngle  float64           `json:"start_angle,omitempty"`
	EndAngle    float64           `json:"end_angle,omitempty"`
	PadAngle    float64           `json:"pad_angle,omitempty"`
	RadialScale string            `json:"radial_scale,omitempty"`
	ValueMode   string            `json:"value_mode,omitempty"`
	Value       string            `json:"value,omitempty"`

	// Render options
	View        string   `json:"view,omitempty"`
	Formats     []string `json:"formats,omitempty"`
	Style       string   `json:"style,omitempty"`
	Palette     string   `json:"palette,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"stroke_width,omitempty"`
	Labels      bool     `json:"labels,omitempty"`
	FontFamily  string   `json:"font_family,omitempty"`
	FontSize    float64  `json:"font_size,omitempty"`
	HideRoot    bool     `json:"hide_root,omitempty"`
	Selected    string   `json:"selected,omitempty"`
	Fragment    bool     `json:"fragment,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Scale       float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger `json:"-"`
	Refresh bool        `json:"-"`
	// OnStage, if set, is called as Execute enters each stage with one of
	// StageLoad, StageLayout or StageRender.
	OnStage func(stage string) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
	palette   []string
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Source is the loaded hierarchy and its content hash.
	Source Source

	// Layout is the computed sunburst.
	Layout sunburst.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Levels     int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return serrors.New(serrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok {
		return serrors.New(serrors.ErrCodeInvalidInput, "invalid style: %q (must be one of: simple, outline)", style)
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if !ValidViews[view] {
		return serrors.New(serrors.ErrCodeInvalidInput, "invalid view: %q (must be one of: sunburst, nodelink)", view)
	}
	return nil
}

// ParseFormats splits a comma-separated format list.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = sunburst.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = sunburst.DefaultHeight
	}
	if o.Padding == nil {
		p := sunburst.UniformPadding(sunburst.DefaultPadding)
		o.Padding = &p
	}
	if o.EndAngle == 0 {
		o.EndAngle = sunburst.DefaultEndAngle
	}
	if o.RadialScale == "" {
		o.RadialScale = arc.Sqrt.String()
	}
	if o.ValueMode == "" {
		o.ValueMode = partition.SumLeaves.String()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, ok := arc.ParseScaleKind(o.RadialScale); !ok {
		return serrors.New(serrors.ErrCodeInvalidConfig, "invalid radial scale: %q (must be one of: sqrt, linear)", o.RadialScale)
	}
	if _, ok := partition.ParseValueMode(o.ValueMode); !ok {
		return serrors.New(serrors.ErrCodeInvalidConfig, "invalid value mode: %q (must be one of: sum, declared)", o.ValueMode)
	}
	return o.ChartConfig().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.View == "" {
		o.View = ViewSunburst
	}
	if o.Style == "" {
		o.Style = styles.StyleSimple
	}
	if o.Stroke == "" {
		o.Stroke = DefaultStroke
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = DefaultStrokeWidth
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateView(o.View); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if err := serrors.ValidateColor(o.Stroke); err != nil {
		return err
	}
	if o.StrokeWidth < 0 || o.FontSize < 0 {
		return serrors.New(serrors.ErrCodeInvalidConfig, "stroke width and font size must be non-negative")
	}
	p, err := styles.Palette(o.Palette)
	if err != nil {
		return err
	}
	o.palette = p
	return nil
}

// ChartConfig returns the sunburst configuration described by o.
// Call after SetLayoutDefaults.
func (o *Options) ChartConfig() sunburst.Config {
	kind, _ := arc.ParseScaleKind(o.RadialScale)
	mode, _ := partition.ParseValueMode(o.ValueMode)
	cfg := sunburst.Config{
		Width:       o.Width,
		Height:      o.Height,
		InnerRadius: o.InnerRadius,
		StartAngle:  o.StartAngle,
		EndAngle:    o.EndAngle,
		PadAngle:    o.PadAngle,
		RadialScale: kind,
		ValueMode:   mode,
		Value:       hierarchy.ByName(o.Value),
	}
	if o.Padding != nil {
		cfg.Padding = *o.Padding
	}
	return cfg
}

// ResolvedPalette returns the palette resolved by ValidateForRender.
func (o *Options) ResolvedPalette() []string {
	if o.palette == nil {
		p, _ := styles.Palette(o.Palette)
		return p
	}
	return o.palette
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		InnerRadius: o.InnerRadius,
		StartAngle:  o.StartAngle,
		EndAngle:    o.EndAngle,
		PadAngle:    o.PadAngle,
		RadialScale: o.RadialScale,
		ValueMode:   o.ValueMode,
		ValueField:  o.Value,
	}
	if o.Padding != nil {
		k.Padding = [4]float64{o.Padding.Top, o.Padding.Right, o.Padding.Bottom, o.Padding.Left}
	}
	return k
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// selected is the resolved slice index, or -1.
func (o *Options) ArtifactKeyOpts(format string, selected int) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		View:        o.View,
		Format:      format,
		Style:       o.Style,
		Stroke:      o.Stroke,
		StrokeWidth: o.StrokeWidth,
		FontFamily:  o.FontFamily,
		FontSize:    o.FontSize,
		Palette:     o.ResolvedPalette(),
		Labels:      o.Labels,
		HideRoot:    o.HideRoot,
		Selected:    selected,
		Fragment:    o.Fragment,
		Interactive: o.Interactive,
		Scale:       o.Scale,
	}
}
