package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/observability"
	"github.com/matzehuels/sunburst/pkg/pipeline"
)

const flare = `{
  "hierarchy": {
    "name": "flare",
    "children": [
      {"name": "analytics", "children": [
        {"name": "cluster", "value": 3938},
        {"name": "graph", "value": 3812}
      ]},
      {"name": "animate", "value": 5000}
    ]
  },
  "formats": ["svg", "json"],
  "selected": "graph"
}`

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	}
	cfg.Logger = logger
	cfg.Gatherer = prometheus.NewRegistry()
	s := New(cfg)
	ts := httptest.NewServer(s)
	t.Cleanup(func() {
		ts.Close()
		s.Close()
	})
	return ts
}

func postRender(t *testing.T, ts *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/render", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, body := get(t, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
		Commit  string `json:"commit"`
	}
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Version)
	assert.NotEmpty(t, health.Commit)
}

func TestPalettes(t *testing.T) {
	ts := newTestServer(t, Config{})
	resp, body := get(t, ts.URL+"/palettes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var palettes map[string][]string
	require.NoError(t, json.Unmarshal(body, &palettes))
	assert.Len(t, palettes["default"], 7)
	assert.Contains(t, palettes, "greyscale")
}

func TestRenderRoundTrip(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, out := postRender(t, ts, flare)
	require.Equal(t, http.StatusCreated, resp.StatusCode, out)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "/renders/"+id, resp.Header.Get("Location"))
	assert.EqualValues(t, 5, out["node_count"])
	assert.EqualValues(t, 3, out["levels"])
	assert.Equal(t, false, out["layout_cached"])

	resp, body := get(t, ts.URL+"/renders/"+id+"/svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("<svg")))
	assert.Equal(t, 5, bytes.Count(body, []byte("<path ")))
	assert.Contains(t, string(body), `opacity="0.5"`)

	resp, body = get(t, ts.URL+"/renders/"+id+"/json")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.True(t, json.Valid(body))

	resp, body = get(t, ts.URL+"/renders/"+id)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var meta resultResponse
	require.NoError(t, json.Unmarshal(body, &meta))
	assert.Equal(t, id, meta.ID)
	assert.Equal(t, pipeline.ViewSunburst, meta.View)
	assert.Equal(t, map[string]string{
		"json": "/renders/" + id + "/json",
		"svg":  "/renders/" + id + "/svg",
	}, meta.Artifacts)

	resp, _ = get(t, ts.URL+"/renders/"+id+"/png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// The same hierarchy hits the layout cache.
	resp, out = postRender(t, ts, flare)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, out["layout_cached"])
	assert.Equal(t, true, out["render_cached"])
	assert.NotEqual(t, id, out["id"])
}

func TestRenderData(t *testing.T) {
	ts := newTestServer(t, Config{Defaults: pipeline.Options{Formats: []string{"svg"}}})

	body, err := json.Marshal(map[string]any{
		"data":   "name: root\nchildren:\n  - name: a\n    size: 1\n  - name: b\n    size: 3\n",
		"format": "yaml",
		"value":  "size",
	})
	require.NoError(t, err)
	resp, out := postRender(t, ts, string(body))
	require.Equal(t, http.StatusCreated, resp.StatusCode, out)
	assert.EqualValues(t, 3, out["node_count"])
	assert.Contains(t, out["artifacts"], "svg")
}

func TestRenderErrors(t *testing.T) {
	ts := newTestServer(t, Config{MaxBodyBytes: 4096})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed", `{"hierarchy":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"hierarchy":{"name":"a"},"colour":"red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"empty", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad palette", `{"hierarchy":{"name":"a"},"palette":"#zz"}`, http.StatusBadRequest, "INVALID_PALETTE"},
		{"bad format", `{"hierarchy":{"name":"a"},"formats":["gif"]}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad data", `{"data":"{not json"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown selection", `{"hierarchy":{"name":"a"},"selected":"zzz"}`, http.StatusNotFound, "NOT_FOUND"},
		{"too large", `{"data":"` + strings.Repeat("x", 5000) + `"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, out := postRender(t, ts, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, out)
			assert.Equal(t, tt.code, out["code"])
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestUnknownResult(t *testing.T) {
	ts := newTestServer(t, Config{})

	resp, _ := get(t, ts.URL+"/renders/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/renders/6f1c1d3e-8a57-4b7e-9a8e-2d6b1c0e4f11/svg")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/renders/6f1c1d3e-8a57-4b7e-9a8e-2d6b1c0e4f11/gif")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	t.Cleanup(observability.Reset)

	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	m.Install()

	logger := log.New(io.Discard)
	s := New(Config{
		Runner:   pipeline.NewRunner(cache.NewMemoryCache(), nil, logger),
		Gatherer: reg,
		Logger:   logger,
	})
	ts := httptest.NewServer(s)
	defer ts.Close()

	resp, out := postRender(t, ts, flare)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = postRender(t, ts, flare)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = get(t, ts.URL+"/renders/"+out["id"].(string)+"/svg")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/render", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("layout", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheEvents.WithLabelValues("layout", "hit")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.stageErrors.WithLabelValues("render")))

	resp, body := get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "sunburst_pipeline_stage_duration_seconds")
	assert.Contains(t, string(body), `route="/renders/{id}/{format}"`)
}

func TestMetricsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg)
	require.NoError(t, err)
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
