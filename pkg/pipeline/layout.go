package pipeline

import (
	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// GenerateLayout partitions root and maps it to arc geometry.
func GenerateLayout(root *hierarchy.Node, opts Options) (sunburst.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return sunburst.Layout{}, err
	}
	return sunburst.Build(root, opts.ChartConfig())
}
