package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes value, share of parent and metadata in node labels.
	// When false, only the node name is shown.
	Detailed bool
	// Palette fills nodes the way the sunburst colours slices. Nil uses
	// white boxes.
	Palette []string
	// Selected outlines the ancestor chain of this slice index. Negative
	// disables highlighting.
	Selected int
	// LeftToRight lays the tree out horizontally.
	LeftToRight bool
}

// ToDOT converts a layout to Graphviz DOT format for node-link visualization.
// Nodes are emitted in pre-order and each slice is connected to its parent.
func ToDOT(l sunburst.Layout, opts Options) string {
	rankdir := "TB"
	if opts.LeftToRight {
		rankdir = "LR"
	}
	onPath := map[int]bool{}
	if opts.Selected >= 0 {
		for _, i := range l.Path(opts.Selected) {
			onPath[i] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, s := range l.Slices {
		attrs := fmtAttrs(s, fmtLabel(l, s, opts.Detailed), opts, onPath[s.Index])
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(s.Index), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, s := range l.Slices {
		if s.Parent == sunburst.NoParent {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(s.Parent), nodeID(s.Index))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "n" + strconv.Itoa(i) }

func fmtLabel(l sunburst.Layout, s sunburst.Slice, detailed bool) string {
	if !detailed {
		return s.Name
	}

	parts := []string{fmt.Sprintf("value: %g", s.Value)}
	if s.Parent != sunburst.NoParent {
		if pv := l.Slices[s.Parent].Value; pv > 0 {
			parts = append(parts, fmt.Sprintf("share: %.1f%%", 100*s.Value/pv))
		}
	}
	for _, k := range slices.Sorted(maps.Keys(s.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, s.Meta[k]))
	}

	return s.Name + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(s sunburst.Slice, label string, opts Options, highlighted bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if opts.Palette != nil {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", styles.ColorAt(opts.Palette, s.Index)))
	}
	if highlighted {
		attrs = append(attrs, "penwidth=3")
	}
	if s.Value == 0 {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fontcolor=grey")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// The result can be passed on to [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
