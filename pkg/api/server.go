package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// Defaults for [Config].
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 4 << 20
	DefaultTimeout      = 60 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr string
	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string
	MaxBodyBytes   int64
	// Timeout bounds a single request.
	Timeout time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

type handler struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

// NewRouter returns the API routes with request ids, panic recovery, CORS
// and request logging installed.
func NewRouter(runner *pipeline.Runner, logger *log.Logger, cfg Config) http.Handler {
	cfg.setDefaults()
	if logger == nil {
		logger = log.Default()
	}
	h := &handler{runner: runner, logger: logger, maxBody: cfg.MaxBodyBytes}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(newCORS(cfg.AllowedOrigins).Handler)
	r.Use(middleware.Timeout(cfg.Timeout))

	r.Get("/healthz", h.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", h.layout)
		r.Post("/render", h.render)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// NewServer wraps handler in an http.Server listening on cfg.Addr.
func NewServer(handler http.Handler, cfg Config) *http.Server {
	cfg.setDefaults()
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Timeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-Cache"},
		MaxAge:         300,
	})
}
