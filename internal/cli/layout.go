package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/arc"
	"github.com/matzehuels/sunburst/pkg/config"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags    chartFlags
		output   string
		noCache  bool
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "layout [file|-]",
		Short: "Compute the sunburst layout and print its slices",
		Long: `Compute the sunburst layout and print its slices.

Each row is one node in pre-order with its value, its share of the root,
and its arc: start and end angle in degrees, inner and outer radius in
pixels. With -o the layout is written as JSON instead (the same document
'render -f json' embeds).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.apply(cmd, cfg.PipelineOptions())
			if err := setInput(&opts, args); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), cfg, opts, output, noCache, maxDepth)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout as JSON to this file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().IntVar(&maxDepth, "depth", -1, "only print slices up to this depth")
	addInputFlags(cmd, &flags)
	addLayoutFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, cfg config.Config, opts pipeline.Options, output string, noCache bool, maxDepth int) error {
	l, cached, err := c.computeLayout(ctx, cfg, opts, noCache)
	if err != nil {
		return err
	}

	if output != "" {
		if err := serrors.ValidateOutputPath(output); err != nil {
			return err
		}
		data, err := sunburst.Marshal(l)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write output %s: %w", output, err)
		}
		printSuccess("Layout complete")
		printFile(output)
		printSummary(len(l.Slices), l.MaxDepth()+1, stage{"layout", cached})
		printNextStep("Render", "sunburst render <input> -f svg")
		return nil
	}

	fmt.Fprintln(stdout, sliceTable(l, maxDepth, opts.ResolvedPalette()))
	printSummary(len(l.Slices), l.MaxDepth()+1, stage{"layout", cached})
	return nil
}

// computeLayout runs the load and layout stages.
func (c *CLI) computeLayout(ctx context.Context, cfg config.Config, opts pipeline.Options, noCache bool) (sunburst.Layout, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return sunburst.Layout{}, false, err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return sunburst.Layout{}, false, fmt.Errorf("initialize runner: %w", err)
	}
	c.attachFetcher(&opts, cfg, noCache)
	defer runner.Close()

	src, err := runner.Load(ctx, opts)
	if err != nil {
		return sunburst.Layout{}, false, err
	}
	return runner.LayoutWithCacheInfo(ctx, src, opts)
}

// sliceTable renders slices up to maxDepth (all when negative), each with
// a swatch of its palette colour.
func sliceTable(l sunburst.Layout, maxDepth int, palette []string) string {
	total := 0.0
	if len(l.Slices) > 0 {
		total = l.Slices[0].Value
	}

	var rows [][]string
	for _, s := range l.Slices {
		if maxDepth >= 0 && s.Depth > maxDepth {
			continue
		}
		g := s.Geometry
		rows = append(rows, []string{
			strconv.Itoa(s.Index),
			swatch(palette, s.Index) + " " + strings.Repeat("  ", s.Depth) + s.Name,
			strconv.Itoa(s.Depth),
			formatValue(s.Value),
			formatShare(s.Value, total),
			fmt.Sprintf("%.1f°", arc.Degrees(g.StartAngle)),
			fmt.Sprintf("%.1f°", arc.Degrees(g.EndAngle)),
			fmt.Sprintf("%.1f", g.InnerRadius),
			fmt.Sprintf("%.1f", g.OuterRadius),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("#", "Name", "Depth", "Value", "Share", "Start", "End", "Inner", "Outer").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			if col >= 2 {
				return styleTableNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
