// Package cli implements the sunburst command-line interface.
//
// # Commands
//
//   - render: lay out a hierarchy and write SVG, PNG, PDF or JSON
//   - layout: print the computed slices as a table, or write them as JSON
//   - path: print the ancestor path of a node
//   - explore: browse a hierarchy interactively and export a highlighted chart
//   - serve: run the HTTP API
//   - cache: inspect and clear the layout/artifact cache
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/sunburst/config.toml (see package
// config); flags override file values. --verbose (-v) enables debug logs.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/buildinfo"
	"github.com/matzehuels/sunburst/pkg/config"
	"github.com/matzehuels/sunburst/pkg/httputil"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

const (
	// httpCacheDir holds downloaded hierarchies, under the cache directory.
	httpCacheDir = "http"
	// httpCacheTTL is how long a download is used before revalidation.
	httpCacheTTL = time.Hour
)

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means the XDG default.
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "sunburst",
		Short:         "Sunburst renders hierarchies as radial partition charts",
		Long:          `Sunburst lays out a tree of named, weighted nodes as concentric rings of arcs and renders the result to SVG, PNG, PDF or JSON.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/sunburst/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	for _, cmd := range root.Commands() {
		registerFlagCompletions(cmd)
	}
	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	cc := cfg.Cache
	if noCache {
		cc.Backend = config.BackendNone
	}
	store, err := cc.Open(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, cc.Keyer(), c.Logger), nil
}

// attachFetcher gives URL inputs a client whose responses are cached under
// the cache directory, unless caching is off or the directory is unusable.
func (c *CLI) attachFetcher(opts *pipeline.Options, cfg config.Config, noCache bool) {
	if !httputil.IsURL(opts.Input) || opts.Fetcher != nil {
		return
	}
	var hc *httputil.Cache
	if !noCache && cfg.Cache.Backend != config.BackendNone {
		dir, err := cfg.Cache.CacheDir()
		if err == nil {
			hc, err = httputil.NewCache(filepath.Join(dir, httpCacheDir), httpCacheTTL)
		}
		if err != nil {
			c.Logger.Warn("http cache disabled", "err", err)
			hc = nil
		}
	}
	opts.Fetcher = httputil.NewClient(hc, nil)
}
