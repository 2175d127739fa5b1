package cli

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/sunburst/pkg/hierarchy"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/sunburst"
)

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("hello")
	assert.Regexp(t, regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `), buf.String())
	assert.Contains(t, buf.String(), "hello")
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("x") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("x") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("x") }, true},
		{"warn at error", log.ErrorLevel, func(l *log.Logger) { l.Warn("x") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestLogResult(t *testing.T) {
	l, err := sunburst.Build(hierarchy.Sample(), sunburst.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	res := &pipeline.Result{
		Source:    pipeline.Source{Name: pipeline.SourceSample},
		Layout:    l,
		Artifacts: map[string][]byte{"svg": nil, "json": nil},
		Stats:     pipeline.Stats{LayoutTime: 3 * time.Millisecond, RenderTime: 5 * time.Millisecond},
		CacheInfo: pipeline.CacheInfo{LayoutHit: true},
	}

	var buf bytes.Buffer
	logResult(newLogger(&buf, log.InfoLevel), res)
	out := buf.String()
	for _, want := range []string{"render finished", "source=sample", "slices=7", "rings=3", "formats=2", "layout_cached=true", "render_cached=false", "total=8ms"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "stage timings")

	buf.Reset()
	logResult(newLogger(&buf, log.DebugLevel), res)
	assert.Contains(t, buf.String(), "stage timings")
}

func TestLoggerFromContext(t *testing.T) {
	assert.Same(t, log.Default(), loggerFromContext(context.Background()))

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	assert.Same(t, custom, loggerFromContext(ctx))
}
