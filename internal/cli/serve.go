package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/internal/server"
	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/config"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

  POST /render                  render a hierarchy (JSON body)
  GET  /renders/{id}            result metadata
  GET  /renders/{id}/{format}   rendered output
  GET  /palettes                named palettes
  GET  /healthz                 liveness
  GET  /metrics                 Prometheus metrics

With the file cache backend, results are kept in memory; with redis or
mongo they are stored alongside layouts so any instance can serve them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cfg.Server.Addr == "" {
				cfg.Server.Addr = config.DefaultServerAddr
			}

			runner, err := c.newRunner(ctx, cfg, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			metrics, err := server.NewMetrics(prometheus.DefaultRegisterer)
			if err != nil {
				return fmt.Errorf("register metrics: %w", err)
			}
			metrics.Install()

			var results cache.Cache
			if b := cfg.Cache.Backend; !noCache && (b == config.BackendRedis || b == config.BackendMongo) {
				results = runner.Cache
			}

			srv := server.New(server.Config{
				Runner:       runner,
				Results:      results,
				Defaults:     cfg.PipelineOptions(),
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Logger:       loggerFromContext(ctx),
			})
			printInfo("Serving on %s", StyleHighlight.Render(cfg.Server.Addr))
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout and artifact caching")

	return cmd
}
