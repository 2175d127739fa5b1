// Package sink renders a computed [sunburst.Layout] to output formats.
//
// [RenderSVG] produces either a standalone SVG document or a bare <g> group
// for embedding. [RenderPNG] and [RenderPDF] convert that SVG through
// rsvg-convert. [RenderJSON] emits the layout records for client-side
// renderers.
//
// Slices are coloured by pre-order index modulo the palette. When a slice is
// selected, every slice on its ancestor chain keeps full opacity and the rest
// are dimmed. Standalone documents carry a small hover script that applies the
// same highlighting in the browser using each path's data-trail attribute.
package sink
