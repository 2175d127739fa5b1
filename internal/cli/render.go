package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/config"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/httputil"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// urlBase names outputs after the last path segment of a URL input, in the
// working directory.
func urlBase(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return defaultBase
	}
	name := path.Base(u.Path)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return defaultBase
	}
	return name
}

// defaultBase names outputs when the input has no file name.
const defaultBase = "sunburst"

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   chartFlags
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a hierarchy as a sunburst chart",
		Long: `Render a hierarchy as a sunburst chart.

The input is a JSON, YAML or TOML tree of {name, value, children} nodes,
read from a file or an http(s) URL. Pass "-" to read from stdin; with no
argument the built-in sample is drawn.

Layouts and rendered outputs are cached, so re-rendering the same hierarchy
with a different palette skips the layout stage.`,
		Example: `  sunburst render flare.json --value size --labels
  sunburst render flare.json -f svg,png -o out/flare --selected cluster
  cat tree.yaml | sunburst render - --input-format yaml --palette cool
  sunburst render https://example.com/flare.json --value size`,
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
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), cfg, opts, inputName(args), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	addInputFlags(cmd, &flags)
	addLayoutFlags(cmd, &flags)
	addRenderFlags(cmd, &flags)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, cfg config.Config, opts pipeline.Options, input, output string, noCache bool) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	c.attachFetcher(&opts, cfg, noCache)
	defer runner.Close()
	opts.Logger = c.Logger

	sp := newSpinner(ctx, fmt.Sprintf("Rendering %s...", input))
	opts.OnStage = sp.stageUpdater(input)
	sp.start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		sp.fail("Render failed")
		return err
	}
	sp.stop()
	logResult(c.Logger, result)

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printSummary(result.Stats.NodeCount, result.Stats.Levels,
		stage{"layout", result.CacheInfo.LayoutHit}, stage{"render", result.CacheInfo.RenderHit})
	return nil
}

// =============================================================================
// Output Files
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format and returns the paths in
// format order. A single format goes to output verbatim; several formats
// share output as a base path.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	formats := append([]string(nil), p.formats...)
	if len(formats) == 0 {
		for f := range p.artifacts {
			formats = append(formats, f)
		}
		sort.Strings(formats)
	}

	var paths []string
	for _, format := range formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(p.output, p.input, format, len(formats) == 1)
		if err := serrors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the file for one format. With a single format an
// explicit output is used as-is; otherwise a known format extension on
// output is stripped and the format appended.
func outputPath(output, input, format string, single bool) string {
	if output != "" && single {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input paths.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "stdin" || input == pipeline.SourceSample {
			return defaultBase
		}
		if httputil.IsURL(input) {
			return urlBase(input)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
