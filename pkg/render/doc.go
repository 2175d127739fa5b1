// Package render holds what every chart renderer shares: turning an SVG
// document into PDF or PNG.
//
// The chart itself lives in [sunburst/sink]; [nodelink] draws the same
// hierarchy as a Graphviz diagram. Both produce SVG first and hand it to
// [ToPDF] or [ToPNG], which pipe it through rsvg-convert (librsvg):
//
//	svg := sink.RenderSVG(layout, opts...)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2)
//
// Without rsvg-convert both return an UNSUPPORTED error. Check [Available]
// first to leave raster formats out instead.
package render
