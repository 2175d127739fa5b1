// Package httputil fetches hierarchy documents over HTTP.
//
// [Client.Fetch] downloads a URL with retries and an optional on-disk
// response cache:
//
//	c := httputil.NewClient(cache, nil)
//	resp, err := c.Fetch(ctx, "https://example.com/flare.json", false)
//
// Transient failures (network errors, 429, 5xx) are retried with
// exponential backoff; see [Retry]. Cached responses older than the cache
// TTL are revalidated with If-None-Match / If-Modified-Since, so an
// unchanged document costs one 304 round trip.
package httputil
