package pipeline

import (
	"reflect"
	"testing"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !serrors.Is(err, serrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, serrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateStyle(t *testing.T) {
	tests := []struct {
		style   string
		wantErr bool
	}{
		{"simple", false},
		{"outline", false},
		{"handdrawn", true},
	}

	for _, tt := range tests {
		err := ValidateStyle(tt.style)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
		}
	}
}

func TestValidateView(t *testing.T) {
	tests := []struct {
		view    string
		wantErr bool
	}{
		{"sunburst", false},
		{"nodelink", false},
		{"icicle", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateView(tt.view)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateView(%q) error = %v, wantErr %v", tt.view, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg, png ,", []string{"svg", "png"}},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStartAngleOnlySweepsToFullTurn(t *testing.T) {
	opts := Options{StartAngle: 90}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout: %v", err)
	}
	cfg := opts.ChartConfig()
	if cfg.StartAngle != 90 || cfg.EndAngle != 360 {
		t.Errorf("angles = %g..%g, want 90..360", cfg.StartAngle, cfg.EndAngle)
	}
}

func TestValidateForLayoutRejectsBadAngles(t *testing.T) {
	for _, opts := range []Options{
		{StartAngle: -90, EndAngle: 270},
		{StartAngle: 0, EndAngle: 720},
		{StartAngle: 270, EndAngle: 90},
	} {
		err := opts.ValidateForLayout()
		if !serrors.Is(err, serrors.ErrCodeInvalidConfig) {
			t.Errorf("%g..%g: err = %v, want INVALID_CONFIG", opts.StartAngle, opts.EndAngle, err)
		}
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Width != sunburst.DefaultWidth || opts.Height != sunburst.DefaultHeight {
		t.Errorf("frame should default to %gx%g, got %gx%g",
			sunburst.DefaultWidth, sunburst.DefaultHeight, opts.Width, opts.Height)
	}
	if opts.Padding == nil || *opts.Padding != sunburst.UniformPadding(sunburst.DefaultPadding) {
		t.Errorf("Padding should default to %g, got %v", sunburst.DefaultPadding, opts.Padding)
	}
	if opts.StartAngle != 0 || opts.EndAngle != 360 {
		t.Errorf("angles should default to 0..360, got %g..%g", opts.StartAngle, opts.EndAngle)
	}
	if opts.RadialScale != "sqrt" {
		t.Errorf("RadialScale should be sqrt, got %s", opts.RadialScale)
	}
	if opts.ValueMode != "sum" {
		t.Errorf("ValueMode should be sum, got %s", opts.ValueMode)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestSetLayoutDefaultsKeepsZeroPadding(t *testing.T) {
	zero := sunburst.Padding{}
	opts := Options{Padding: &zero}
	opts.SetLayoutDefaults()
	if cfg := opts.ChartConfig(); cfg.Padding != zero {
		t.Errorf("explicit zero padding should survive, got %v", cfg.Padding)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Style != styles.StyleSimple {
		t.Errorf("Style should be %s, got %s", styles.StyleSimple, opts.Style)
	}
	if opts.View != ViewSunburst {
		t.Errorf("View should be %s, got %s", ViewSunburst, opts.View)
	}
	if opts.Stroke != "white" || opts.StrokeWidth != 1 {
		t.Errorf("stroke should default to white/1, got %s/%g", opts.Stroke, opts.StrokeWidth)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %g, got %g", DefaultScale, opts.Scale)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code serrors.Code
	}{
		{"bad radial scale", Options{RadialScale: "log"}, serrors.ErrCodeInvalidConfig},
		{"bad value mode", Options{ValueMode: "max"}, serrors.ErrCodeInvalidConfig},
		{"negative width", Options{Width: -1}, serrors.ErrCodeInvalidConfig},
		{"bad format", Options{Formats: []string{"gif"}}, serrors.ErrCodeInvalidFormat},
		{"bad palette", Options{Palette: "rainbow"}, serrors.ErrCodeInvalidPalette},
		{"bad stroke", Options{Stroke: "#12"}, serrors.ErrCodeInvalidPalette},
		{"bad view", Options{View: "icicle"}, serrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := serrors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Palette: "warm"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	first := opts.ResolvedPalette()

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if !reflect.DeepEqual(first, opts.ResolvedPalette()) {
		t.Error("palette changed on second call")
	}
	if first[0] != "#940031" {
		t.Errorf("warm palette not resolved: %v", first)
	}
}

func TestChartConfig(t *testing.T) {
	opts := Options{RadialScale: "linear", ValueMode: "declared", InnerRadius: 20, PadAngle: 1}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}
	cfg := opts.ChartConfig()
	if cfg.RadialScale.String() != "linear" || cfg.ValueMode.String() != "declared" {
		t.Errorf("scale/mode not mapped: %s/%s", cfg.RadialScale, cfg.ValueMode)
	}
	if cfg.InnerRadius != 20 || cfg.PadAngle != 1 {
		t.Errorf("radius/pad not mapped: %g/%g", cfg.InnerRadius, cfg.PadAngle)
	}
	if cfg.Value == nil {
		t.Error("Value function should be set")
	}
}

func TestKeyOptsDistinguishOptions(t *testing.T) {
	a := Options{}
	b := Options{RadialScale: "linear"}
	a.SetLayoutDefaults()
	b.SetLayoutDefaults()
	if reflect.DeepEqual(a.LayoutKeyOpts(), b.LayoutKeyOpts()) {
		t.Error("radial scale should change layout key options")
	}

	c := Options{}
	_ = c.ValidateForRender()
	if reflect.DeepEqual(c.ArtifactKeyOpts("svg", -1), c.ArtifactKeyOpts("svg", 2)) {
		t.Error("selection should change artifact key options")
	}
	if reflect.DeepEqual(c.ArtifactKeyOpts("svg", -1), c.ArtifactKeyOpts("png", -1)) {
		t.Error("format should change artifact key options")
	}
}
