package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/sunburst/pkg/arc"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// Highlight opacities.
const (
	OpacityActive = 1.0
	OpacityDimmed = 0.5
)

// NoSelection disables selection highlighting.
const NoSelection = -1

const sliceInteractionCSS = `
    .slice { transition: opacity 0.2s ease; cursor: pointer; }
    .slice-label { transition: opacity 0.2s ease; }`

const sliceInteractionJS = `
    function trail(el) { return el.dataset.trail.split(' '); }
    function highlight(ids) {
      document.querySelectorAll('.slice').forEach(s => s.setAttribute('opacity', ids.includes(s.id.replace('slice-', '')) ? 1 : 0.5));
      document.querySelectorAll('.slice-label').forEach(t => t.setAttribute('opacity', ids.includes(t.dataset.slice.replace('slice-', '')) ? 1 : 0.5));
    }
    function reset() {
      document.querySelectorAll('.slice, .slice-label').forEach(el => el.setAttribute('opacity', el.dataset.opacity || 1));
    }
    document.querySelectorAll('.slice, .slice-label').forEach(el => el.dataset.opacity = el.getAttribute('opacity'));
    document.querySelectorAll('.slice').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(trail(el)));
      el.addEventListener('mouseleave', reset);
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style       styles.Style
	palette     []string
	stroke      string
	strokeWidth float64
	labels      bool
	fontFamily  string
	fontSize    float64
	selected    int
	hideRoot    bool
	fragment    bool
	interactive bool
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithPalette(p []string) SVGOption   { return func(r *svgRenderer) { r.palette = p } }
func WithLabels() SVGOption              { return func(r *svgRenderer) { r.labels = true } }
func WithHideRoot() SVGOption            { return func(r *svgRenderer) { r.hideRoot = true } }

// WithFragment emits a bare <g> group instead of a standalone document.
// Fragments never carry the interaction script.
func WithFragment() SVGOption { return func(r *svgRenderer) { r.fragment = true } }

// WithInteraction embeds the hover highlighting CSS and script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithStroke sets the separator colour and width.
func WithStroke(color string, width float64) SVGOption {
	return func(r *svgRenderer) { r.stroke, r.strokeWidth = color, width }
}

// WithFont sets the label font. Zero values keep the defaults.
func WithFont(family string, size float64) SVGOption {
	return func(r *svgRenderer) {
		if family != "" {
			r.fontFamily = family
		}
		if size > 0 {
			r.fontSize = size
		}
	}
}

// WithSelected highlights the ancestor chain of slice i. Pass [NoSelection]
// to clear.
func WithSelected(i int) SVGOption { return func(r *svgRenderer) { r.selected = i } }

// RenderSVG renders l as SVG.
func RenderSVG(l sunburst.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	slices := r.buildSlices(l)

	var buf bytes.Buffer
	if !r.fragment {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
			l.Width, l.Height, l.Width, l.Height)
		r.style.RenderDefs(&buf)
	}
	fmt.Fprintf(&buf, `  <g class="sunburst" transform="translate(%.2f,%.2f)">`+"\n", l.CenterX, l.CenterY)
	for _, s := range slices {
		r.style.RenderSlice(&buf, s)
	}
	if r.labels {
		for _, s := range slices {
			r.style.RenderLabel(&buf, s)
		}
	}
	buf.WriteString("  </g>\n")

	if !r.fragment {
		if r.interactive {
			renderSliceInteraction(&buf)
		}
		buf.WriteString("</svg>\n")
	}
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:       styles.Simple{},
		palette:     styles.DefaultPalette,
		stroke:      "white",
		strokeWidth: 1,
		fontFamily:  styles.DefaultFontFamily,
		fontSize:    styles.DefaultFontSize,
		selected:    NoSelection,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Simple{}
	}
	return r
}

func (r svgRenderer) buildSlices(l sunburst.Layout) []styles.Slice {
	active := map[int]bool{}
	if r.selected >= 0 && r.selected < len(l.Slices) {
		for _, i := range l.Path(r.selected) {
			active[i] = true
		}
	}

	out := make([]styles.Slice, 0, len(l.Slices))
	for _, s := range l.Slices {
		g := s.Geometry
		if g.Empty() {
			continue
		}
		opacity := OpacityActive
		if len(active) > 0 && !active[s.Index] {
			opacity = OpacityDimmed
		}
		cx, cy := g.Centroid()
		out = append(out, styles.Slice{
			ID:          SliceID(s.Index),
			Index:       s.Index,
			Label:       s.Name,
			Path:        arc.Path(g, l.PadAngle),
			Fill:        styles.ColorAt(r.palette, s.Index),
			Stroke:      r.stroke,
			StrokeWidth: r.strokeWidth,
			Opacity:     opacity,
			Hidden:      r.hideRoot && s.Depth == 0,
			Trail:       l.Path(s.Index),
			LabelX:      cx,
			LabelY:      cy,
			MidRadius:   (g.InnerRadius + g.OuterRadius) / 2,
			Sweep:       math.Abs(g.Sweep()),
			Thickness:   math.Abs(g.OuterRadius - g.InnerRadius),
			Value:       s.Value,
			FontSize:    r.fontSize,
			FontFamily:  r.fontFamily,
		})
	}
	return out
}

// SliceID returns the element id of slice i.
func SliceID(i int) string { return fmt.Sprintf("slice-%d", i) }

func renderSliceInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", sliceInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", sliceInteractionJS)
}
