package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tillvoss/mindweave/pkg/errors"
	"github.com/tillvoss/mindweave/pkg/graph"
	"github.com/tillvoss/mindweave/pkg/layout"
	"github.com/tillvoss/mindweave/pkg/pipeline"
)

// sceneRequest is the body of POST /api/v1/scene and /api/v1/render.
type sceneRequest struct {
	Source  string        `json:"source"`
	Layout  layout.Config `json:"layout,omitzero"`
	Format  string        `json:"format,omitempty"` // render only
	Refresh bool          `json:"refresh,omitempty"`
}

// sceneResponse is the body of a successful POST /api/v1/scene.
type sceneResponse struct {
	Scene     *graph.Scene       `json:"scene"`
	Message   string             `json:"message,omitempty"`
	DocHash   string             `json:"doc_hash"`
	SceneHash string             `json:"scene_hash"`
	Stats     statsResponse      `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

// statsResponse reports stage timings in milliseconds.
type statsResponse struct {
	NodeCount       int     `json:"node_count"`
	ConnectionCount int     `json:"connection_count"`
	ParseMillis     float64 `json:"parse_ms"`
	LayoutMillis    float64 `json:"layout_ms"`
	RenderMillis    float64 `json:"render_ms"`
}

// errorResponse is the body of any non-2xx response. Code carries the
// machine-readable error code when the failure is a structured error.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// contentTypes maps render formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleScene parses and lays out the posted markdown and returns the scene.
func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source:  req.Source,
		Layout:  req.Layout,
		Refresh: req.Refresh,
		Formats: []string{pipeline.FormatJSON},
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	writeJSON(w, http.StatusOK, sceneResponse{
		Scene:     result.Scene,
		Message:   result.Tree.Message,
		DocHash:   result.DocHash,
		SceneHash: result.SceneHash,
		Stats: statsResponse{
			NodeCount:       result.Stats.NodeCount,
			ConnectionCount: result.Stats.ConnectionCount,
			ParseMillis:     millis(result.Stats.ParseTime),
			LayoutMillis:    millis(result.Stats.LayoutTime),
			RenderMillis:    millis(result.Stats.RenderTime),
		},
		Cache: result.CacheInfo,
	})
}

// handleRender runs the full pipeline and returns the artifact bytes for a
// single format. The default format is SVG.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(req.Format)
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := errors.ValidateFormat(format); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source:  req.Source,
		Layout:  req.Layout,
		Refresh: req.Refresh,
		Formats: []string{format},
		Logger:  s.logger,
	})
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// decodeRequest reads and validates the shared request body.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (sceneRequest, bool) {
	var req sceneRequest

	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxSourceBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("request too large (max %d bytes)", s.cfg.MaxSourceBytes))
		return req, false
	}

	if err := json.Unmarshal(data, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return req, false
	}

	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders an error response. Structured errors contribute their
// code and user-facing message; other errors are passed through as-is.
func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// statusForError maps structured error codes from the pipeline to HTTP
// statuses. Validation failures are the client's fault, not the server's.
func statusForError(err error) int {
	code := string(errors.GetCode(err))
	switch {
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusBadRequest
	case strings.HasPrefix(code, "NOT_FOUND") || strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
