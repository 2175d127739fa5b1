// Package observability lets libraries report pipeline, cache, download
// and HTTP events without depending on a metrics backend.
//
// Each event family has an interface, a no-op default and a process-wide
// slot. Main packages install implementations at startup; the HTTP server
// installs Prometheus collectors:
//
//	observability.SetPipelineHooks(metrics)
//	observability.SetCacheHooks(metrics)
//	observability.SetFetchHooks(metrics)
//	observability.SetHTTPHooks(metrics)
//
// Libraries read the current slot at the call site:
//
//	observability.Pipeline().OnLayoutStart(ctx, nodeCount)
//	observability.Pipeline().OnLayoutComplete(ctx, sliceCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// PipelineHooks receives load, layout and render events.
type PipelineHooks interface {
	// source is a file path, URL, "data", "request" or "sample".
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, sliceCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives layout and artifact cache events. keyType is
// "layout", "artifact" or "result".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// Fetch outcomes.
const (
	FetchCached      = "cached"      // served from the download cache
	FetchRevalidated = "revalidated" // server answered 304
	FetchDownloaded  = "downloaded"  // full body transferred
	FetchFailed      = "failed"
)

// FetchHooks receives remote document downloads.
type FetchHooks interface {
	OnFetch(ctx context.Context, host, outcome string, size int, duration time.Duration)
}

// HTTPHooks receives HTTP API requests. route is the matched pattern.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// NoopPipelineHooks ignores every event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)       {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                           {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)  {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopFetchHooks ignores every event.
type NoopFetchHooks struct{}

func (NoopFetchHooks) OnFetch(context.Context, string, string, int, time.Duration) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// slot holds one installed implementation.
type slot[T any] struct {
	mu  sync.RWMutex
	cur T
	def T
}

func newSlot[T any](def T) *slot[T] { return &slot[T]{cur: def, def: def} }

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

func (s *slot[T]) set(v T, ok bool) {
	if !ok {
		return
	}
	s.mu.Lock()
	s.cur = v
	s.mu.Unlock()
}

func (s *slot[T]) reset() { s.set(s.def, true) }

var (
	pipelineSlot = newSlot[PipelineHooks](NoopPipelineHooks{})
	cacheSlot    = newSlot[CacheHooks](NoopCacheHooks{})
	fetchSlot    = newSlot[FetchHooks](NoopFetchHooks{})
	httpSlot     = newSlot[HTTPHooks](NoopHTTPHooks{})
)

// SetPipelineHooks installs h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) { pipelineSlot.set(h, h != nil) }

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) { cacheSlot.set(h, h != nil) }

// SetFetchHooks installs h. A nil h is ignored.
func SetFetchHooks(h FetchHooks) { fetchSlot.set(h, h != nil) }

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) { httpSlot.set(h, h != nil) }

func Pipeline() PipelineHooks { return pipelineSlot.get() }
func Cache() CacheHooks       { return cacheSlot.get() }
func Fetch() FetchHooks       { return fetchSlot.get() }
func HTTP() HTTPHooks         { return httpSlot.get() }

// Reset restores the no-op defaults. Tests that install hooks call it in
// cleanup.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	fetchSlot.reset()
	httpSlot.reset()
}
