package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shwimple/shwimple/internal/dev"
	"github.com/shwimple/shwimple/internal/errors"
	"github.com/shwimple/shwimple/pkg/dom"
	"github.com/shwimple/shwimple/pkg/middleware"
	"github.com/shwimple/shwimple/pkg/render"
)

// Default server settings.
const (
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultIdleTimeout       = 60 * time.Second

	// IndexPage is the page served at "/".
	IndexPage = "index"
)

// Options configures the preview server.
type Options struct {
	// PagesDir is the directory holding page files.
	PagesDir string

	// Layout is used for page files that do not name one. The zero value
	// is dom.LayoutStandard.
	Layout dom.Layout

	// Reload enables the live reload endpoint and client script.
	Reload bool

	// Logger for server events. Default: slog.Default()
	Logger *slog.Logger

	// Registry collects the server metrics and backs /metrics.
	// Default: a fresh registry per server.
	Registry *prometheus.Registry

	// Renderer serializes documents. Default: doctype-prefixed HTML.
	Renderer *render.Renderer

	// Tracing adds OpenTelemetry spans. The global provider is used.
	Tracing bool

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Server serves page files over HTTP.
type Server struct {
	opts     Options
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *middleware.Metrics
	renderer *render.Renderer
	hub      *dev.ReloadHub
	router   *chi.Mux
}

// New creates a server. Pages are loaded from disk on every request, so
// edits show up without a restart.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewRenderer(render.RendererConfig{Doctype: true})
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		opts:     opts,
		logger:   opts.Logger.With("component", "server"),
		registry: opts.Registry,
		metrics:  middleware.NewMetrics(middleware.WithRegistry(opts.Registry)),
		renderer: opts.Renderer,
		router:   chi.NewRouter(),
	}
	if opts.Reload {
		s.hub = dev.NewReloadHub(
			dev.WithHubLogger(s.logger),
			dev.WithClientHooks(s.metrics.ReloadClientConnected, s.metrics.ReloadClientDisconnected),
		)
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all routes.
func (s *Server) setupRoutes() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.Recoverer)
	if s.opts.Tracing {
		s.router.Use(middleware.OpenTelemetry(
			middleware.WithRequestFilter(func(r *http.Request) bool {
				return r.URL.Path != "/metrics" && r.URL.Path != dev.ReloadPath
			}),
		))
	}
	s.router.Use(middleware.Prometheus(s.metrics))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	if s.hub != nil {
		s.router.Handle(dev.ReloadPath, s.hub)
	}
	s.router.Get("/", s.handlePage)
	s.router.Get("/{page}", s.handlePage)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Hub returns the reload hub, or nil when reload is off.
func (s *Server) Hub() *dev.ReloadHub {
	return s.hub
}

// Metrics returns the server metrics.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

// ListenAndServe listens on addr and serves until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("E401").
			WithDetail("Could not listen on " + addr + ".").
			Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "pages", s.opts.PagesDir)
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-ctx.Done():
		s.logger.Info("shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown.
	if s.hub != nil {
		s.hub.Close()
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	<-errCh

	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}
