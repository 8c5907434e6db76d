package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"

	"github.com/matzehuels/mindmap/pkg/buildinfo"
	errs "github.com/matzehuels/mindmap/pkg/errors"
	"github.com/matzehuels/mindmap/pkg/mapfile"
	"github.com/matzehuels/mindmap/pkg/observability"
	"github.com/matzehuels/mindmap/pkg/pipeline"
)

type layoutResponse struct {
	RequestID string         `json:"request_id"`
	Cached    bool           `json:"cached"`
	Layout    mapfile.Layout `json:"layout"`
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok", "build": buildinfo.Fields()}
	writeJSON(w, http.StatusOK, body)
}

func (h *handler) layout(w http.ResponseWriter, r *http.Request) {
	opts, ok := h.decode(w, r)
	if !ok {
		return
	}
	if err := opts.ValidateForLoad(); err != nil {
		h.fail(w, r, err)
		return
	}

	l, hit, err := h.runner.GenerateLayoutWithCacheInfo(r.Context(), opts.Document, opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{
		RequestID: middleware.GetReqID(r.Context()),
		Cached:    hit,
		Layout:    l,
	})
}

func (h *handler) render(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		h.fail(w, r, err)
		return
	}

	opts, ok := h.decode(w, r)
	if !ok {
		return
	}
	opts.Formats = []string{format}

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	cacheState := "miss"
	if result.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheState)
	w.WriteHeader(http.StatusOK)
	w.Write(result.Artifacts[format])
}

// decode reads the request body into pipeline options. It writes the error
// response itself and reports false when the body is unusable.
func (h *handler) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, string(errs.ErrCodeInvalidInput), "request body too large")
			return opts, false
		}
		h.fail(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "read request body"))
		return opts, false
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		h.fail(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body"))
		return opts, false
	}
	opts.Logger = h.logger
	return opts, true
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	msg := errs.UserMessage(err)
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		h.logger.Error("request failed", "path", r.URL.Path, "err", err, "request_id", middleware.GetReqID(r.Context()))
		msg = "internal error"
	}
	writeError(w, r, status, code, msg)
}

func statusFor(err error) int {
	switch {
	case errs.IsInvalid(err), errs.Is(err, errs.ErrCodeUnsupported):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeNotFound), errs.Is(err, errs.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"code":"INTERNAL_ERROR","message":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
