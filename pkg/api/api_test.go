package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mindmap/pkg/cache"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

const body = `{"document": {"root": {"data": {"uid": "root", "text": "Root", "width": 100, "height": 40}, "children": [
  {"data": {"uid": "a", "text": "A", "width": 80, "height": 30}},
  {"data": {"uid": "b", "text": "B", "width": 80, "height": 30}}
]}}}`

func newTestRouter(t *testing.T, c cache.Cache) http.Handler {
	t.Helper()
	logger := log.New(io.Discard)
	return NewRouter(pipeline.NewRunner(c, nil, logger), logger, Config{})
}

func do(t *testing.T, h http.Handler, method, target, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatalf("error body %q: %v", rec.Body.String(), err)
	}
	return e
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Status string            `json:"status"`
		Build  map[string]string `json:"build"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "ok" || got.Build["version"] == "" {
		t.Errorf("health = %+v", got)
	}
}

func TestLayout(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/v1/layout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var got layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.RequestID == "" || got.RequestID != rec.Header().Get("X-Request-Id") {
		t.Errorf("request id = %q, header %q", got.RequestID, rec.Header().Get("X-Request-Id"))
	}
	if len(got.Layout.Nodes) != 3 || len(got.Layout.Lines) != 2 {
		t.Fatalf("nodes = %d lines = %d", len(got.Layout.Nodes), len(got.Layout.Lines))
	}
	root, _ := got.Layout.NodeByID("root")
	if root.Left != 350 || root.Top != 280 {
		t.Errorf("root at (%v, %v), want (350, 280)", root.Left, root.Top)
	}
	if b, _ := got.Layout.NodeByID("b"); b.Dir != "left" {
		t.Errorf("b dir = %q, want left", b.Dir)
	}
}

func TestLayoutCached(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	h := newTestRouter(t, fc)

	do(t, h, http.MethodPost, "/v1/layout", body)
	rec := do(t, h, http.MethodPost, "/v1/layout", body)
	var got layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if !got.Cached {
		t.Error("second layout should come from the cache")
	}
}

func TestRender(t *testing.T) {
	h := newTestRouter(t, nil)
	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"png", "image/png", "\x89PNG"},
		{"json", "application/json", "{"},
		{"dot", "text/vnd.graphviz", "digraph"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/v1/render?format="+tt.format, body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if rec.Header().Get("X-Cache") != "miss" {
				t.Errorf("X-Cache = %q", rec.Header().Get("X-Cache"))
			}
			if !bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.prefix)) {
				t.Errorf("body starts %q", rec.Body.String()[:min(20, rec.Body.Len())])
			}
		})
	}
}

func TestErrors(t *testing.T) {
	h := newTestRouter(t, nil)
	tests := []struct {
		name    string
		method  string
		target  string
		payload string
		status  int
		code    string
	}{
		{"bad format", http.MethodPost, "/v1/render?format=gif", body, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad json", http.MethodPost, "/v1/layout", `{"document":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no document", http.MethodPost, "/v1/layout", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"no root", http.MethodPost, "/v1/layout", `{"document": {}}`, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"bad viz type", http.MethodPost, "/v1/layout", strings.Replace(body, `{"document"`, `{"viz_type": "tower", "document"`, 1), http.StatusBadRequest, "INVALID_VIZ_TYPE"},
		{"bad line style", http.MethodPost, "/v1/render", strings.Replace(body, `{"document"`, `{"line_style": "zigzag", "document"`, 1), http.StatusBadRequest, "INVALID_LINE_STYLE"},
		{"bad theme", http.MethodPost, "/v1/layout", strings.Replace(body, `{"document"`, `{"theme": "nope = 1", "document"`, 1), http.StatusBadRequest, "INVALID_THEME"},
		{"unknown route", http.MethodGet, "/v2/layout", "", http.StatusNotFound, "NOT_FOUND"},
		{"wrong method", http.MethodGet, "/v1/layout", "", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, tt.payload)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			e := decodeError(t, rec)
			if e.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", e.Code, tt.code, e.Message)
			}
			if e.RequestID == "" {
				t.Error("request id missing from error body")
			}
		})
	}
}

func TestBodyTooLarge(t *testing.T) {
	logger := log.New(io.Discard)
	h := NewRouter(pipeline.NewRunner(nil, nil, logger), logger, Config{MaxBodyBytes: 16})
	rec := do(t, h, http.MethodPost, "/v1/layout", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	h := newTestRouter(t, nil)
	const id = "0b6a3f4e-2f7c-4d0a-9d8e-1c2b3a4d5e6f"

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != id {
		t.Errorf("X-Request-Id = %q, want %q", got, id)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "not a uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got == "not a uuid" || got == "" {
		t.Errorf("X-Request-Id = %q, want a fresh uuid", got)
	}
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	newTestRouter(t, nil).ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(http.NotFoundHandler(), Config{})
	if srv.Addr != DefaultAddr {
		t.Errorf("Addr = %q", srv.Addr)
	}
	if srv.ReadHeaderTimeout == 0 {
		t.Error("ReadHeaderTimeout not set")
	}
}
