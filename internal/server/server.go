// Package server implements the sunburst HTTP API.
//
// Routes:
//
//	GET  /healthz                 liveness probe
//	GET  /metrics                 Prometheus metrics
//	GET  /palettes                named palettes
//	POST /render                  run the pipeline, store the result
//	GET  /renders/{id}            result metadata
//	GET  /renders/{id}/{format}   one rendered artifact
//
// Results live in a cache under cache.TTLResult, so any backend works: the
// in-memory cache for a single instance, Redis or MongoDB when several
// instances sit behind a load balancer.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

// DefaultMaxBodyBytes caps POST /render bodies.
const DefaultMaxBodyBytes = 8 << 20

const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Runner executes the pipeline. Its cache holds layouts and artifacts.
	Runner *pipeline.Runner
	// Results stores render results for retrieval by id.
	// Defaults to an in-memory cache.
	Results cache.Cache
	// Keyer builds result keys. Defaults to the runner's keyer.
	Keyer cache.Keyer
	// Defaults seeds every request before the request body is applied.
	Defaults pipeline.Options
	// MaxBodyBytes caps request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	runner  *pipeline.Runner
	results cache.Cache
	keyer   cache.Keyer
	cfg     Config
	log     *log.Logger
}

// New creates and configures the server.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Results == nil {
		cfg.Results = cache.NewMemoryCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cfg.Runner.Keyer
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.Logger == nil {
		cfg.Logger = cfg.Runner.Logger
	}

	s := &Server{
		runner:  cfg.Runner,
		results: cfg.Results,
		keyer:   cfg.Keyer,
		cfg:     cfg,
		log:     cfg.Logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(instrument)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/palettes", s.handlePalettes)

	r.Post("/render", s.handleRender)
	r.Get("/renders/{id}", s.handleResult)
	r.Get("/renders/{id}/{format}", s.handleArtifact)

	s.router = r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close releases the result store.
func (s *Server) Close() error {
	return s.results.Close()
}
