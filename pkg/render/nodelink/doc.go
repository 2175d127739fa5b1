// Package nodelink renders a sunburst hierarchy as a node-link tree diagram.
//
// # Overview
//
// The same [sunburst.Layout] that drives the radial chart can be drawn as a
// conventional tree with Graphviz: one box per slice, one edge per parent
// link. It is useful for checking the structure of an input file when ring
// slices are too thin to label.
//
// # Usage
//
//	dot := nodelink.ToDOT(layout, nodelink.Options{Detailed: true, Selected: -1})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
