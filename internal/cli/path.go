package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		flags   chartFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "path <node> [file|-]",
		Short: "Print the chain of ancestors of a node",
		Long: `Print the chain of ancestors of a node, root first.

This is the set of slices 'render --selected <node>' keeps at full opacity.
When several nodes share a name the first in pre-order is used.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.apply(cmd, cfg.PipelineOptions())
			if err := setInput(&opts, args[1:]); err != nil {
				return err
			}
			l, _, err := c.computeLayout(cmd.Context(), cfg, opts, noCache)
			if err != nil {
				return err
			}
			path, err := slicePath(l, args[0])
			if err != nil {
				return err
			}
			printPath(l, path, opts.ResolvedPalette())
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addInputFlags(cmd, &flags)
	flags.addValueFlags(cmd)

	return cmd
}

// addValueFlags registers the flags that change slice values.
func (f *chartFlags) addValueFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.opts.ValueMode, "value-mode", "", "slice values: sum (default), declared")
	cmd.Flags().StringVar(&f.opts.Value, "value", "", "node field to weigh leaves by")
}

// slicePath returns the root-first indices leading to the named node.
func slicePath(l sunburst.Layout, name string) ([]int, error) {
	i, ok := l.Find(name)
	if !ok {
		return nil, serrors.New(serrors.ErrCodeNotFound, "node %q not found", name)
	}
	return l.Path(i), nil
}

func printPath(l sunburst.Layout, path []int, palette []string) {
	fmt.Fprintln(stdout, StyleTitle.Render(trail(l, path)))

	total := l.Slices[0].Value
	for _, i := range path {
		s := l.Slices[i]
		parentShare := "-"
		if s.Parent != sunburst.NoParent {
			parentShare = formatShare(s.Value, l.Slices[s.Parent].Value)
		}
		printKeyValue(swatch(palette, i)+" "+strings.Repeat("  ", s.Depth)+s.Name,
			fmt.Sprintf("%s  %s of root  %s of parent", formatValue(s.Value), formatShare(s.Value, total), parentShare))
	}
}
