// Package pkg provides the core libraries for sunburst charts.
//
// # Overview
//
// A sunburst draws a tree as concentric rings: the root in the middle, each
// level one ring further out, and every node an arc whose angle is
// proportional to its value. The pkg directory is organized into three
// areas:
//
//  1. Geometry - [hierarchy], [partition], [arc] and [sunburst]
//  2. Output - [render] and its subpackages, [io]
//  3. Infrastructure - [pipeline], [cache], [config], [httputil],
//     [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	JSON / YAML / TOML tree (file, stdin, URL or API request)
//	         ↓
//	    [io] package (decode into hierarchy.Node)
//	         ↓
//	    [partition] package (x, dx, y, dy in the unit square)
//	         ↓
//	    [arc] package (angles and radii)
//	         ↓
//	    [sunburst] package (serializable layout)
//	         ↓
//	    [render/sunburst/sink] package (SVG/PDF/PNG/JSON)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/sunburst/pkg/hierarchy"
//	    "github.com/matzehuels/sunburst/pkg/render/sunburst/sink"
//	    "github.com/matzehuels/sunburst/pkg/sunburst"
//	)
//
//	cfg := sunburst.DefaultConfig()
//	cfg.Value = hierarchy.Declared
//	l, err := sunburst.Build(root, cfg)
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(l, sink.WithLabels())
//
// # Main Packages
//
// [hierarchy] - The input tree and value accessors.
//
// [partition] - Partition layout: pre-order traversal, value aggregation
// and the unit-square rectangles each node occupies.
//
// [arc] - Angle and radius scales and the SVG path of an annular sector.
//
// [sunburst] - Chart configuration and the flattened, serializable layout
// shared by every renderer.
//
// [render] - SVG to PDF/PNG conversion. [render/sunburst/sink] writes the
// chart itself, [render/sunburst/styles] holds palettes and slice styles,
// and [render/nodelink] draws the same tree as a Graphviz diagram.
//
// [pipeline] - Load, layout and render with caching, used by both the CLI
// and the HTTP API.
//
// [cache] - Cache backends (file, memory, Redis, MongoDB) and key
// derivation.
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/hierarchy
// [partition]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/partition
// [arc]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/arc
// [sunburst]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/sunburst
// [render]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render
// [render/sunburst/sink]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render/sunburst/sink
// [render/sunburst/styles]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render/sunburst/styles
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/config
// [httputil]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/sunburst/pkg/errors
package pkg
