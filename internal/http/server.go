package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"jobdash/internal/core"
	applog "jobdash/internal/log"
	"jobdash/internal/middleware/security"
	"jobdash/internal/middleware/trace"
	"jobdash/internal/services"
)

// Dashboard is what the HTTP layer needs from the dashboard service.
type Dashboard interface {
	Snapshot(ctx context.Context) (services.Snapshot, error)
	JobTab(ctx context.Context, status core.JobStatus) ([]services.JobCard, error)
	Tabs(ctx context.Context) ([]services.Tab, error)
}

type Server struct {
	http.Server
	dashboard Dashboard
	colors    core.ColorTable
	timeout   time.Duration
	logger    *applog.Logger
	tracer    *trace.Middleware
}

// Option configures a Server.
type Option func(*Server)

// WithRequestTimeout bounds how long a handler may spend fetching records.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithColors sets the palette used for chart legends. It should match the
// table the dashboard aggregates with.
func WithColors(colors core.ColorTable) Option {
	return func(s *Server) { s.colors = colors }
}

func WithLogger(logger *applog.Logger) Option {
	return func(s *Server) { s.logger = logger.WithComponent(applog.ComponentHTTP) }
}

func NewServer(addr string, dash Dashboard, opts ...Option) *Server {
	s := &Server{
		dashboard: dash,
		colors:    core.DefaultColorTable(),
		timeout:   7 * time.Second,
		logger:    applog.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracer = trace.NewMiddleware(s.logger)

	s.Addr = addr
	s.Handler = s.routes()
	s.ReadTimeout = 10 * time.Second
	s.WriteTimeout = 10 * time.Second
	s.IdleTimeout = 60 * time.Second
	s.MaxHeaderBytes = 1 << 16 // 64KB
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.tracer.Middleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)
	r.Use(applog.Middleware(s.logger))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleDashboard)
		r.Get("/jobs", s.handleJobTab)
		r.Get("/jobs/tabs", s.handleTabs)
		r.Get("/invoices", s.handleInvoices)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		renderError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Metrics exposes request counters from the trace middleware.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
