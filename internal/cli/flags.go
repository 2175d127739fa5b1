package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// stdinArg selects standard input as the hierarchy source.
const stdinArg = "-"

// stdin is swapped by tests.
var stdin io.Reader = os.Stdin

// chartFlags collects pipeline flags. Only flags the user actually set
// override the config file, so flag defaults are zero values.
type chartFlags struct {
	opts        pipeline.Options
	padding     float64
	formats     string
	inputFormat string
}

func addInputFlags(cmd *cobra.Command, f *chartFlags) {
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "input format: json, yaml, toml (default: from file extension, json for stdin)")
}

func addLayoutFlags(cmd *cobra.Command, f *chartFlags) {
	fs := cmd.Flags()
	fs.Float64Var(&f.opts.Width, "width", 0, "frame width (default 400)")
	fs.Float64Var(&f.opts.Height, "height", 0, "frame height (default 400)")
	fs.Float64Var(&f.padding, "padding", 0, "uniform frame padding (default 30)")
	fs.Float64Var(&f.opts.InnerRadius, "inner-radius", 0, "radius of the innermost ring's inner edge")
	fs.Float64Var(&f.opts.StartAngle, "start-angle", 0, "start angle in degrees, clockwise from 12 o'clock")
	fs.Float64Var(&f.opts.EndAngle, "end-angle", sunburst.DefaultEndAngle, "end angle in degrees")
	fs.Float64Var(&f.opts.PadAngle, "pad-angle", 0, "gap between adjacent slices in degrees")
	fs.StringVar(&f.opts.RadialScale, "radial-scale", "", "ring spacing: sqrt (default, equal-area rings), linear")
	fs.StringVar(&f.opts.ValueMode, "value-mode", "", "slice values: sum (default, sum of leaves), declared")
	fs.StringVar(&f.opts.Value, "value", "", "leaf weight: count (default, every leaf weighs 1), value or size (declared value), or a meta key")
}

func addRenderFlags(cmd *cobra.Command, f *chartFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "formats", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	fs.StringVar(&f.opts.View, "view", "", "view: sunburst (default), nodelink")
	fs.StringVar(&f.opts.Style, "style", "", "visual style: simple (default), outline")
	fs.StringVar(&f.opts.Palette, "palette", "", "palette name or comma-separated colours")
	fs.StringVar(&f.opts.Stroke, "stroke", "", "separator colour between slices (default white)")
	fs.Float64Var(&f.opts.StrokeWidth, "stroke-width", 0, "separator width (default 1)")
	fs.BoolVar(&f.opts.Labels, "labels", false, "draw node names on slices that fit them")
	fs.StringVar(&f.opts.FontFamily, "font-family", "", "label font family")
	fs.Float64Var(&f.opts.FontSize, "font-size", 0, "label font size (default 10)")
	fs.BoolVar(&f.opts.HideRoot, "hide-root", false, "do not draw the centre slice")
	fs.StringVar(&f.opts.Selected, "selected", "", "highlight the path from the root to this node")
	fs.BoolVar(&f.opts.Fragment, "fragment", false, "emit an SVG <g> fragment instead of a document")
	fs.BoolVar(&f.opts.Interactive, "interactive", false, "embed hover highlighting in standalone SVG")
	fs.Float64Var(&f.opts.Scale, "scale", 0, "PNG resolution multiplier (default 2)")
}

// apply overlays the flags the user set onto base.
func (f *chartFlags) apply(cmd *cobra.Command, base pipeline.Options) pipeline.Options {
	o := f.opts
	set := map[string]func(){
		"input-format": func() { base.Format = f.inputFormat },
		"width":        func() { base.Width = o.Width },
		"height":       func() { base.Height = o.Height },
		"padding": func() {
			p := sunburst.UniformPadding(f.padding)
			base.Padding = &p
		},
		"inner-radius": func() { base.InnerRadius = o.InnerRadius },
		"start-angle":  func() { base.StartAngle = o.StartAngle },
		"end-angle":    func() { base.EndAngle = o.EndAngle },
		"pad-angle":    func() { base.PadAngle = o.PadAngle },
		"radial-scale": func() { base.RadialScale = o.RadialScale },
		"value-mode":   func() { base.ValueMode = o.ValueMode },
		"value":        func() { base.Value = o.Value },
		"formats":      func() { base.Formats = pipeline.ParseFormats(f.formats) },
		"view":         func() { base.View = o.View },
		"style":        func() { base.Style = o.Style },
		"palette":      func() { base.Palette = o.Palette },
		"stroke":       func() { base.Stroke = o.Stroke },
		"stroke-width": func() { base.StrokeWidth = o.StrokeWidth },
		"labels":       func() { base.Labels = o.Labels },
		"font-family":  func() { base.FontFamily = o.FontFamily },
		"font-size":    func() { base.FontSize = o.FontSize },
		"hide-root":    func() { base.HideRoot = o.HideRoot },
		"selected":     func() { base.Selected = o.Selected },
		"fragment":     func() { base.Fragment = o.Fragment },
		"interactive":  func() { base.Interactive = o.Interactive },
		"scale":        func() { base.Scale = o.Scale },
	}
	for name, fn := range set {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			fn()
		}
	}
	return base
}

// setInput points opts at the hierarchy named by args: a file, "-" for
// stdin, or nothing for the built-in sample.
func setInput(opts *pipeline.Options, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if args[0] != stdinArg {
		opts.Input = args[0]
		return nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return serrors.Wrap(serrors.ErrCodeInvalidInput, err, "read stdin")
	}
	if len(data) == 0 {
		return serrors.New(serrors.ErrCodeInvalidInput, "stdin is empty")
	}
	opts.Data = data
	return nil
}

// inputName describes where the hierarchy came from, for messages.
func inputName(args []string) string {
	switch {
	case len(args) == 0:
		return pipeline.SourceSample
	case args[0] == stdinArg:
		return "stdin"
	}
	return args[0]
}
