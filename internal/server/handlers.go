package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/matzehuels/sunburst/pkg/buildinfo"
	"github.com/matzehuels/sunburst/pkg/cache"
	serrors "github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/render/sunburst/styles"
)

// renderRequest is the POST /render body. The hierarchy is given either as
// a JSON tree in "hierarchy" or as raw text in "data" with its "format".
type renderRequest struct {
	pipeline.Options
	Data string `json:"data,omitempty"`
}

// storedResult is what the result store keeps per render.
type storedResult struct {
	ID        string            `json:"id"`
	Hash      string            `json:"hash"`
	NodeCount int               `json:"node_count"`
	Levels    int               `json:"levels"`
	View      string            `json:"view"`
	Artifacts map[string][]byte `json:"artifacts"`
	CreatedAt time.Time         `json:"created_at"`
}

// resultResponse describes a stored result.
type resultResponse struct {
	ID           string            `json:"id"`
	Hash         string            `json:"hash"`
	NodeCount    int               `json:"node_count"`
	Levels       int               `json:"levels"`
	View         string            `json:"view"`
	Artifacts    map[string]string `json:"artifacts"`
	LayoutCached bool              `json:"layout_cached"`
	RenderCached bool              `json:"render_cached"`
	ExpiresAt    time.Time         `json:"expires_at"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	out := map[string][]string{"default": styles.DefaultPalette}
	for _, name := range styles.PaletteNames() {
		p, err := styles.Palette(name)
		if err != nil {
			continue
		}
		out[name] = p
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := renderRequest{Options: s.cfg.Defaults}
	req.Formats = append([]string(nil), s.cfg.Defaults.Formats...)
	if p := s.cfg.Defaults.Padding; p != nil {
		padding := *p
		req.Padding = &padding
	}
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, serrors.New(serrors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.cfg.MaxBodyBytes))
			return
		}
		writeError(w, serrors.Wrap(serrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	opts := req.Options
	if req.Data != "" {
		opts.Data = []byte(req.Data)
	}
	if opts.Hierarchy == nil && len(opts.Data) == 0 {
		writeError(w, serrors.New(serrors.ErrCodeInvalidInput, "request needs a hierarchy or data"))
		return
	}
	opts.Logger = s.log

	result, err := s.runner.Execute(ctx, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	stored := storedResult{
		ID:        uuid.NewString(),
		Hash:      result.Source.Hash,
		NodeCount: result.Stats.NodeCount,
		Levels:    result.Stats.Levels,
		View:      opts.View,
		Artifacts: result.Artifacts,
		CreatedAt: time.Now().UTC(),
	}
	if stored.View == "" {
		stored.View = pipeline.ViewSunburst
	}
	data, err := json.Marshal(stored)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.results.Set(ctx, s.keyer.ResultKey(stored.ID), data, cache.TTLResult); err != nil {
		writeError(w, serrors.Wrap(serrors.ErrCodeInternal, err, "store result"))
		return
	}

	resp := stored.response()
	resp.LayoutCached = result.CacheInfo.LayoutHit
	resp.RenderCached = result.CacheInfo.RenderHit
	w.Header().Set("Location", "/renders/"+stored.ID)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	stored, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stored.response())
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	stored, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	data, ok := stored.Artifacts[format]
	if !ok {
		writeError(w, serrors.New(serrors.ErrCodeNotFound, "render %s has no %s output", stored.ID, format))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) lookup(r *http.Request) (*storedResult, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return nil, serrors.New(serrors.ErrCodeNotFound, "render %q not found", id)
	}
	data, ok, err := s.results.Get(r.Context(), s.keyer.ResultKey(id))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInternal, err, "load result")
	}
	if !ok {
		return nil, serrors.New(serrors.ErrCodeNotFound, "render %q not found or expired", id)
	}
	var stored storedResult
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInternal, err, "decode result")
	}
	return &stored, nil
}

func (sr storedResult) response() resultResponse {
	formats := make([]string, 0, len(sr.Artifacts))
	for f := range sr.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	links := make(map[string]string, len(formats))
	for _, f := range formats {
		links[f] = "/renders/" + sr.ID + "/" + f
	}
	return resultResponse{
		ID:        sr.ID,
		Hash:      sr.Hash,
		NodeCount: sr.NodeCount,
		Levels:    sr.Levels,
		View:      sr.View,
		Artifacts: links,
		ExpiresAt: sr.CreatedAt.Add(cache.TTLResult),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps coded errors to their HTTP status.
func writeError(w http.ResponseWriter, err error) {
	status := serrors.HTTPStatus(err)
	body := map[string]string{"error": serrors.UserMessage(err)}
	if code := serrors.GetCode(err); code != "" {
		body["code"] = string(code)
	}
	writeJSON(w, status, body)
}
