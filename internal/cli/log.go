package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sunburst/pkg/pipeline"
)

const logTimeFormat = "15:04:05.00"

// newLogger creates a logger that writes HH:MM:SS.ms timestamps to w.
// At debug level it also reports the calling file and line.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// logResult writes one summary line for a finished render: what was
// drawn, which stages were served from cache and how long each took.
func logResult(l *log.Logger, res *pipeline.Result) {
	total := res.Stats.LoadTime + res.Stats.LayoutTime + res.Stats.RenderTime
	l.Info("render finished",
		"source", res.Source.Name,
		"slices", len(res.Layout.Slices),
		"rings", res.Layout.MaxDepth()+1,
		"formats", len(res.Artifacts),
		"layout_cached", res.CacheInfo.LayoutHit,
		"render_cached", res.CacheInfo.RenderHit,
		"total", total.Round(time.Millisecond))
	l.Debug("stage timings",
		"load", res.Stats.LoadTime,
		"layout", res.Stats.LayoutTime,
		"render", res.Stats.RenderTime)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
