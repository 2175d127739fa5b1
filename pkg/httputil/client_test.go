package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/observability"
)

type fetchRecorder struct {
	observability.NoopFetchHooks
	outcomes []string
}

func (r *fetchRecorder) OnFetch(_ context.Context, host, outcome string, _ int, _ time.Duration) {
	if host != "127.0.0.1" {
		outcome += "@" + host
	}
	r.outcomes = append(r.outcomes, outcome)
}

const flare = `{"name":"flare","children":[{"name":"a","size":1}]}`

func testClient(c *Cache) *Client {
	cl := NewClient(c, map[string]string{"X-Test": "1"})
	cl.delay = time.Millisecond
	return cl
}

func TestIsURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com/flare.json", true},
		{"http://localhost:8080/x", true},
		{"flare.json", false},
		{"ftp://example.com/x", false},
		{"https://", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsURL(tt.in); got != tt.want {
			t.Errorf("IsURL(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("missing custom header")
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(flare))
	}))
	defer srv.Close()

	resp, err := testClient(nil).Fetch(context.Background(), srv.URL+"/flare", false)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if string(resp.Body) != flare {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.ETag != `"v1"` {
		t.Errorf("etag = %q", resp.ETag)
	}
	if got := resp.FormatHint(); got != "json" {
		t.Errorf("FormatHint() = %q, want json", got)
	}
}

func TestFetch_CachedAndRevalidated(t *testing.T) {
	var requests, conditional atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("If-None-Match") == `"v1"` {
			conditional.Add(1)
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(flare))
	}))
	defer srv.Close()

	rec := &fetchRecorder{}
	observability.SetFetchHooks(rec)
	t.Cleanup(observability.Reset)

	c, _ := NewCache(t.TempDir(), time.Hour)
	cl := testClient(c)
	ctx := context.Background()
	url := srv.URL + "/flare.json"

	if _, err := cl.Fetch(ctx, url, false); err != nil {
		t.Fatal(err)
	}
	if _, err := cl.Fetch(ctx, url, false); err != nil {
		t.Fatal(err)
	}
	if n := requests.Load(); n != 1 {
		t.Fatalf("fresh cache hit made %d requests, want 1", n)
	}

	old := time.Now().Add(-2 * time.Hour)
	_ = os.Chtimes(c.keyPath(url), old, old)

	resp, err := cl.Fetch(ctx, url, false)
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if string(resp.Body) != flare {
		t.Errorf("revalidated body = %q", resp.Body)
	}
	if n := conditional.Load(); n != 1 {
		t.Errorf("conditional requests = %d, want 1", n)
	}

	if _, err := cl.Fetch(ctx, url, true); err != nil {
		t.Fatal(err)
	}
	if n := requests.Load(); n != 3 {
		t.Errorf("refresh should bypass cache: requests = %d, want 3", n)
	}

	want := []string{
		observability.FetchDownloaded,
		observability.FetchCached,
		observability.FetchRevalidated,
		observability.FetchDownloaded,
	}
	if len(rec.outcomes) != len(want) {
		t.Fatalf("outcomes = %v, want %v", rec.outcomes, want)
	}
	for i := range want {
		if rec.outcomes[i] != want[i] {
			t.Errorf("outcome %d = %q, want %q", i, rec.outcomes[i], want[i])
		}
	}
}

func TestFetch_RetriesServiceUnavailable(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(flare))
	}))
	defer srv.Close()

	resp, err := testClient(nil).Fetch(context.Background(), srv.URL+"/flare.json", false)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if string(resp.Body) != flare {
		t.Errorf("body = %q", resp.Body)
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("requests = %d, want 2", n)
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  serrors.Code
		wantCalls int32
	}{
		{"not found", http.StatusNotFound, serrors.ErrCodeNotFound, 1},
		{"gone", http.StatusGone, serrors.ErrCodeNotFound, 1},
		{"forbidden", http.StatusForbidden, serrors.ErrCodeNetwork, 1},
		{"server error retried", http.StatusBadGateway, serrors.ErrCodeNetwork, 3},
		{"rate limited retried", http.StatusTooManyRequests, serrors.ErrCodeNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := testClient(nil).Fetch(context.Background(), srv.URL, false)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := serrors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %s, want %s", got, tt.wantCode)
			}
			if n := calls.Load(); n != tt.wantCalls {
				t.Errorf("calls = %d, want %d", n, tt.wantCalls)
			}
		})
	}
}

func TestFetch_RejectsNonURL(t *testing.T) {
	_, err := testClient(nil).Fetch(context.Background(), "flare.json", false)
	if serrors.GetCode(err) != serrors.ErrCodeInvalidInput {
		t.Errorf("code = %s, want %s", serrors.GetCode(err), serrors.ErrCodeInvalidInput)
	}
}

func TestFormatHint(t *testing.T) {
	tests := []struct {
		contentType string
		url         string
		want        string
	}{
		{"application/json", "https://x/data", "json"},
		{"application/vnd.api+json", "https://x/data", "json"},
		{"application/yaml", "https://x/data", "yaml"},
		{"text/x-yaml", "https://x/data", "yaml"},
		{"application/toml", "https://x/data", "toml"},
		{"text/plain", "https://x/tree.yml", "yaml"},
		{"", "https://x/tree.TOML?raw=1", "toml"},
		{"", "https://x/tree", ""},
	}
	for _, tt := range tests {
		r := &Response{URL: tt.url, ContentType: tt.contentType}
		if got := r.FormatHint(); got != tt.want {
			t.Errorf("FormatHint(%q, %q) = %q, want %q", tt.contentType, tt.url, got, tt.want)
		}
	}
}
