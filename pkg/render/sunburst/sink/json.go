package sink

import (
	"encoding/json"

	"github.com/matzehuels/sunburst/pkg/arc"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	palette []string
	paths   bool
	style   string
}

// WithJSONPalette attaches a fill colour to every slice.
func WithJSONPalette(p []string) JSONOption { return func(r *jsonRenderer) { r.palette = p } }

// WithJSONPaths attaches SVG path data to every slice.
func WithJSONPaths() JSONOption { return func(r *jsonRenderer) { r.paths = true } }

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

type jsonSlice struct {
	sunburst.Slice
	Fill  string `json:"fill,omitempty"`
	Path  string `json:"path,omitempty"`
	Trail []int  `json:"trail"`
}

type jsonDoc struct {
	sunburst.Layout
	Style  string      `json:"style,omitempty"`
	Slices []jsonSlice `json:"slices"`
}

// RenderJSON encodes the layout with per-slice ancestor trails and, when
// requested, colours and path data.
func RenderJSON(l sunburst.Layout, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	doc := jsonDoc{Layout: l, Style: r.style, Slices: make([]jsonSlice, len(l.Slices))}
	for i, s := range l.Slices {
		js := jsonSlice{Slice: s, Trail: l.Path(i)}
		if r.palette != nil {
			js.Fill = styles.ColorAt(r.palette, s.Index)
		}
		if r.paths {
			js.Path = arc.Path(s.Geometry, l.PadAngle)
		}
		doc.Slices[i] = js
	}
	return json.MarshalIndent(doc, "", "  ")
}
