package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/observability"
)

const (
	httpTimeout = 30 * time.Second

	// MaxBodyBytes caps downloaded documents.
	MaxBodyBytes = 32 << 20

	userAgent = "sunburst"
)

var (
	// ErrNotFound is returned for 404 and 410 responses.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for transport failures and unexpected statuses.
	ErrNetwork = errors.New("network error")
)

// Response is a fetched document.
type Response struct {
	URL          string    `json:"url"`
	Body         []byte    `json:"body"`
	ContentType  string    `json:"content_type,omitempty"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// Client downloads documents with retries and optional caching.
type Client struct {
	http    *http.Client
	cache   *Cache
	headers map[string]string

	attempts int
	delay    time.Duration
}

// NewClient creates a Client. cache may be nil to disable caching; headers
// are sent with every request.
func NewClient(cache *Cache, headers map[string]string) *Client {
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    cache,
		headers:  headers,
		attempts: 3,
		delay:    time.Second,
	}
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Fetch downloads rawURL. Unless refresh is set, a fresh cached copy is
// returned without a request and a stale one is revalidated.
// Errors carry code NOT_FOUND or NETWORK_ERROR.
func (c *Client) Fetch(ctx context.Context, rawURL string, refresh bool) (*Response, error) {
	if !IsURL(rawURL) {
		return nil, serrors.New(serrors.ErrCodeInvalidInput, "not an http(s) URL: %q", rawURL)
	}

	start := time.Now()
	host := hostOf(rawURL)
	var stale *Response
	if c.cache != nil && !refresh {
		var cached Response
		ok, err := c.cache.Get(rawURL, &cached)
		switch {
		case ok && err == nil:
			observability.Fetch().OnFetch(ctx, host, observability.FetchCached, len(cached.Body), time.Since(start))
			return &cached, nil
		case ok && errors.Is(err, ErrExpired):
			stale = &cached
		}
	}

	var resp *Response
	err := Retry(ctx, c.attempts, c.delay, func() error {
		var err error
		resp, err = c.do(ctx, rawURL, stale)
		return err
	})
	if err != nil {
		observability.Fetch().OnFetch(ctx, host, observability.FetchFailed, 0, time.Since(start))
		code := serrors.ErrCodeNetwork
		if errors.Is(err, ErrNotFound) {
			code = serrors.ErrCodeNotFound
		}
		return nil, serrors.Wrap(code, err, "fetch %s", rawURL)
	}

	outcome := observability.FetchDownloaded
	if resp == stale {
		outcome = observability.FetchRevalidated
	}
	observability.Fetch().OnFetch(ctx, host, outcome, len(resp.Body), time.Since(start))

	if c.cache != nil {
		if resp == stale {
			_ = c.cache.Touch(rawURL)
		} else {
			_ = c.cache.Set(rawURL, resp)
		}
	}
	return resp, nil
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Hostname()
	}
	return ""
}

// do performs one request. A 304 answer to a conditional request returns
// stale itself.
func (c *Client) do(ctx context.Context, rawURL string, stale *Response) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, application/yaml, application/toml;q=0.9, */*;q=0.5")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if stale != nil {
		if stale.ETag != "" {
			req.Header.Set("If-None-Match", stale.ETag)
		}
		if stale.LastModified != "" {
			req.Header.Set("If-Modified-Since", stale.LastModified)
		}
	}

	httpResp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusNotModified && stale != nil {
		return stale, nil
	}
	if err := checkStatus(httpResp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("%w: read body: %v", ErrNetwork, err)}
	}
	if len(body) > MaxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrNetwork, MaxBodyBytes)
	}

	return &Response{
		URL:          rawURL,
		Body:         body,
		ContentType:  httpResp.Header.Get("Content-Type"),
		ETag:         httpResp.Header.Get("ETag"),
		LastModified: httpResp.Header.Get("Last-Modified"),
		FetchedAt:    time.Now().UTC(),
	}, nil
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound, code == http.StatusGone:
		return ErrNotFound
	case code == http.StatusTooManyRequests, code >= 500:
		return &RetryableError{
			Err:   fmt.Errorf("%w: status %d", ErrNetwork, code),
			After: retryAfter(resp.Header, time.Now()),
		}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

// FormatHint guesses the document format ("json", "yaml" or "toml") from
// the Content-Type, then the URL path extension. It returns "" when
// neither says.
func (r *Response) FormatHint() string {
	if mt, _, err := mime.ParseMediaType(r.ContentType); err == nil {
		switch {
		case mt == "application/json" || strings.HasSuffix(mt, "+json"):
			return "json"
		case strings.Contains(mt, "yaml"):
			return "yaml"
		case strings.Contains(mt, "toml"):
			return "toml"
		}
	}
	if u, err := url.Parse(r.URL); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".json":
			return "json"
		case ".yaml", ".yml":
			return "yaml"
		case ".toml":
			return "toml"
		}
	}
	return ""
}
