package sink

import (
	"context"

	"github.com/matzehuels/sunburst/pkg/render"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// RasterOption configures PNG and PDF output.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	svgOpts []SVGOption
	scale   float64
}

// WithSVGOptions passes options through to the SVG the raster is made from.
// Fragment and interactive output are always turned off.
func WithSVGOptions(opts ...SVGOption) RasterOption {
	return func(r *rasterRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG zoom factor. The default is 2. PDF ignores it.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

func newRaster(opts []RasterOption) rasterRenderer {
	r := rasterRenderer{scale: 2}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r rasterRenderer) svg(l sunburst.Layout) []byte {
	opts := append(append([]SVGOption{}, r.svgOpts...), func(s *svgRenderer) {
		s.fragment = false
		s.interactive = false
	})
	return RenderSVG(l, opts...)
}

// RenderPNG draws the chart as SVG and converts it with rsvg-convert.
func RenderPNG(ctx context.Context, l sunburst.Layout, opts ...RasterOption) ([]byte, error) {
	r := newRaster(opts)
	return render.ToPNG(ctx, r.svg(l), r.scale)
}

// RenderPDF draws the chart as SVG and converts it with rsvg-convert.
func RenderPDF(ctx context.Context, l sunburst.Layout, opts ...RasterOption) ([]byte, error) {
	r := newRaster(opts)
	return render.ToPDF(ctx, r.svg(l))
}
