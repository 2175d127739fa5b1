package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sunburst/pkg/cache"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[chart]
width = 600
padding = 10
radial_scale = "linear"
value = "size"

[render]
palette = "cool"
formats = ["svg", "json"]
labels = true
hide_root = true

[cache]
backend = "none"

[server]
addr = ":9000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	opts := cfg.PipelineOptions()
	assert.Equal(t, 600.0, opts.Width)
	require.NotNil(t, opts.Padding)
	assert.Equal(t, sunburst.UniformPadding(10), *opts.Padding)
	assert.Equal(t, "linear", opts.RadialScale)
	assert.Equal(t, "size", opts.Value)
	assert.Equal(t, "cool", opts.Palette)
	assert.Equal(t, []string{"svg", "json"}, opts.Formats)
	assert.True(t, opts.Labels)
	assert.True(t, opts.HideRoot)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	require.NoError(t, opts.ValidateAndSetDefaults())
}

func TestLoadPaddingSides(t *testing.T) {
	path := writeConfig(t, `
[chart]
padding = 5
[chart.padding_sides]
top = 1
right = 2
bottom = 3
left = 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	opts := cfg.PipelineOptions()
	assert.Equal(t, sunburst.Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}, *opts.Padding)
}

func TestLoadStartAngleOnly(t *testing.T) {
	path := writeConfig(t, `
[chart]
start_angle = 90
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	opts := cfg.PipelineOptions()
	assert.Equal(t, 90.0, opts.StartAngle)
	assert.Equal(t, sunburst.DefaultEndAngle, opts.EndAngle)
	require.NoError(t, opts.ValidateForLayout())
}

func TestLoadMissingDefaultIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Nil(t, cfg.PipelineOptions().Padding)
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, AppName), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, AppName, "config.toml"), []byte("[chart]\nwidth = 321\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 321.0, cfg.Chart.Width)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
		code serrors.Code
	}{
		{"syntax", "[chart\n", "", serrors.ErrCodeInvalidConfig},
		{"unknown key", "[chart]\nwidht = 3\n", "chart.widht", serrors.ErrCodeInvalidConfig},
		{"unknown backend", "[cache]\nbackend = \"memcached\"\n", "memcached", serrors.ErrCodeInvalidConfig},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n", "redis_addr", serrors.ErrCodeInvalidConfig},
		{"mongo without uri", "[cache]\nbackend = \"mongo\"\n", "mongo_uri", serrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, tt.code, serrors.GetCode(err))
			if tt.want != "" {
				assert.True(t, strings.Contains(err.Error(), tt.want), err.Error())
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, serrors.Is(err, serrors.ErrCodeFileNotFound))
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := Cache{}.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), dir)

	dir, err = Cache{Dir: "/custom"}.CacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/custom", dir)
}

func TestCacheOpen(t *testing.T) {
	ctx := context.Background()

	c, err := Cache{Backend: BackendNone}.Open(ctx)
	require.NoError(t, err)
	assert.IsType(t, cache.NullCache{}, c)

	dir := t.TempDir()
	c, err = Cache{Backend: BackendFile, Dir: dir}.Open(ctx)
	require.NoError(t, err)
	fc, ok := c.(*cache.FileCache)
	require.True(t, ok)
	assert.Equal(t, dir, fc.Dir())
}

func TestCacheKeyer(t *testing.T) {
	k := Cache{Prefix: "team:"}.Keyer()
	assert.Equal(t, "team:result:x", k.ResultKey("x"))

	k = Cache{Prefix: "team:", Backend: BackendRedis}.Keyer()
	assert.Equal(t, "result:x", k.ResultKey("x"))
}
