// Package config loads the optional sunburst configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/sunburst/config.toml
// (~/.config/sunburst/config.toml when XDG_CONFIG_HOME is unset):
//
//	[chart]
//	width = 600
//	height = 600
//	padding = 20
//	inner_radius = 40
//	radial_scale = "linear"
//	value = "size"
//
//	[render]
//	palette = "cool"
//	formats = ["svg", "png"]
//	labels = true
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// Command-line flags override file values.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/cache"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

// AppName names the config and cache directories.
const AppName = "sunburst"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
	BackendNone  = "none"
)

// DefaultServerAddr is the listen address of "sunburst serve".
const DefaultServerAddr = ":8080"

// Config is the decoded configuration file.
type Config struct {
	Chart  Chart  `toml:"chart"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
}

// Chart holds layout defaults.
type Chart struct {
	Width       float64           `toml:"width"`
	Height      float64           `toml:"height"`
	Padding     *float64          `toml:"padding"`
	Sides       *sunburst.Padding `toml:"padding_sides"`
	InnerRadius float64           `toml:"inner_radius"`
	StartAngle  float64           `toml:"start_angle"`
	EndAngle    float64           `toml:"end_angle"`
	PadAngle    float64           `toml:"pad_angle"`
	RadialScale string            `toml:"radial_scale"`
	ValueMode   string            `toml:"value_mode"`
	Value       string            `toml:"value"`
}

// Render holds output defaults.
type Render struct {
	Formats     []string `toml:"formats"`
	Style       string   `toml:"style"`
	Palette     string   `toml:"palette"`
	Stroke      string   `toml:"stroke"`
	StrokeWidth float64  `toml:"stroke_width"`
	Labels      bool     `toml:"labels"`
	FontFamily  string   `toml:"font_family"`
	FontSize    float64  `toml:"font_size"`
	HideRoot    bool     `toml:"hide_root"`
	Interactive bool     `toml:"interactive"`
	Scale       float64  `toml:"scale"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend         string `toml:"backend"`
	Dir             string `toml:"dir"`
	Prefix          string `toml:"prefix"`
	RedisAddr       string `toml:"redis_addr"`
	RedisPassword   string `toml:"redis_password"`
	RedisDB         int    `toml:"redis_db"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Chart:  Chart{EndAngle: sunburst.DefaultEndAngle},
		Cache:  Cache{Backend: BackendFile},
		Server: Server{Addr: DefaultServerAddr},
	}
}

// DefaultPath returns the XDG config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// Load reads path. An empty path reads DefaultPath and tolerates its absence;
// an explicit path must exist. Unknown keys are rejected so typos surface.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return Config{}, serrors.Wrap(serrors.ErrCodeFileNotFound, err, "config %s", path)
			}
			return Default(), nil
		}
		return Config{}, serrors.Wrap(serrors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, serrors.New(serrors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the cache backend settings.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return serrors.New(serrors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	case BackendMongo:
		if c.Cache.MongoURI == "" {
			return serrors.New(serrors.ErrCodeInvalidConfig, "cache.mongo_uri is required for the mongo backend")
		}
	default:
		return serrors.New(serrors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, mongo, none)", c.Cache.Backend)
	}
	if c.Server.MaxBodyBytes < 0 {
		return serrors.New(serrors.ErrCodeInvalidConfig, "server.max_body_bytes must be non-negative")
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the file.
func (c Config) PipelineOptions() pipeline.Options {
	ch, r := c.Chart, c.Render
	opts := pipeline.Options{
		Width:       ch.Width,
		Height:      ch.Height,
		InnerRadius: ch.InnerRadius,
		StartAngle:  ch.StartAngle,
		EndAngle:    ch.EndAngle,
		PadAngle:    ch.PadAngle,
		RadialScale: ch.RadialScale,
		ValueMode:   ch.ValueMode,
		Value:       ch.Value,

		Formats:     append([]string(nil), r.Formats...),
		Style:       r.Style,
		Palette:     r.Palette,
		Stroke:      r.Stroke,
		StrokeWidth: r.StrokeWidth,
		Labels:      r.Labels,
		FontFamily:  r.FontFamily,
		FontSize:    r.FontSize,
		HideRoot:    r.HideRoot,
		Interactive: r.Interactive,
		Scale:       r.Scale,
	}
	switch {
	case ch.Sides != nil:
		p := *ch.Sides
		opts.Padding = &p
	case ch.Padding != nil:
		p := sunburst.UniformPadding(*ch.Padding)
		opts.Padding = &p
	}
	return opts
}

// CacheDir returns the configured file cache directory, defaulting to
// $XDG_CACHE_HOME/sunburst (~/.cache/sunburst).
func (c Cache) CacheDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Open creates the configured cache backend.
func (c Cache) Open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendMongo:
		mc, err := cache.NewMongoCache(ctx, cache.MongoConfig{
			URI:        c.MongoURI,
			Database:   c.MongoDatabase,
			Collection: c.MongoCollection,
		})
		if err != nil {
			return nil, err
		}
		return mc, nil
	}
	dir, err := c.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// Keyer returns the cache keyer, scoped by Prefix for the file backend.
// Redis applies the prefix itself.
func (c Cache) Keyer() cache.Keyer {
	if c.Prefix != "" && c.Backend != BackendRedis {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Prefix)
	}
	return cache.NewDefaultKeyer()
}
