package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/render/nodelink"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/sink"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// ResolveSelected maps opts.Selected to a slice index. An empty selection
// yields sink.NoSelection; an unknown name is a NOT_FOUND error.
func ResolveSelected(l sunburst.Layout, opts Options) (int, error) {
	if opts.Selected == "" {
		return sink.NoSelection, nil
	}
	i, ok := l.Find(opts.Selected)
	if !ok {
		return sink.NoSelection, serrors.New(serrors.ErrCodeNotFound, "no node named %q", opts.Selected)
	}
	return i, nil
}

// RenderFromLayout generates every requested format concurrently.
func RenderFromLayout(ctx context.Context, l sunburst.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	selected, err := ResolveSelected(l, opts)
	if err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(ctx, l, opts, format, selected)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l sunburst.Layout, opts Options, format string, selected int) ([]byte, error) {
	if format == FormatJSON {
		return sink.RenderJSON(l,
			sink.WithJSONPalette(opts.ResolvedPalette()),
			sink.WithJSONPaths(),
			sink.WithJSONStyle(opts.Style))
	}
	if opts.View == ViewNodelink {
		return renderNodelink(ctx, l, opts, format, selected)
	}

	svgOpts := buildSVGOptions(opts, selected)
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, l, sink.WithSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(ctx, l, sink.WithSVGOptions(svgOpts...))
	}
	return nil, serrors.New(serrors.ErrCodeUnsupported, "unsupported format: %s", format)
}

func renderNodelink(ctx context.Context, l sunburst.Layout, opts Options, format string, selected int) ([]byte, error) {
	dot := nodelink.ToDOT(l, nodelink.Options{
		Detailed: opts.Labels,
		Palette:  opts.ResolvedPalette(),
		Selected: selected,
	})
	switch format {
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	}
	return nil, serrors.New(serrors.ErrCodeUnsupported, "unsupported nodelink format: %s", format)
}

func buildSVGOptions(opts Options, selected int) []sink.SVGOption {
	style, _ := styles.ByName(opts.Style)
	svgOpts := []sink.SVGOption{
		sink.WithStyle(style),
		sink.WithPalette(opts.ResolvedPalette()),
		sink.WithStroke(opts.Stroke, opts.StrokeWidth),
		sink.WithFont(opts.FontFamily, opts.FontSize),
		sink.WithSelected(selected),
	}
	if opts.Labels {
		svgOpts = append(svgOpts, sink.WithLabels())
	}
	if opts.HideRoot {
		svgOpts = append(svgOpts, sink.WithHideRoot())
	}
	if opts.Fragment {
		svgOpts = append(svgOpts, sink.WithFragment())
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, sink.WithInteraction())
	}
	return svgOpts
}
