// Package server exposes the search pipeline over HTTP together with a small
// browser page for entering DOIs and viewing the graph.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/matsen/citegraph/internal/search"
	"github.com/matsen/citegraph/internal/viz"
)

// ShutdownTimeout bounds graceful shutdown once the context is cancelled.
const ShutdownTimeout = 10 * time.Second

// Server serves the search API and the input page.
type Server struct {
	searcher *search.Searcher
	logger   *zap.Logger
	layout   string
	sources  []string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLayout sets the graph layout used by the input page.
func WithLayout(layout string) Option {
	return func(s *Server) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// WithSources lists the configured source names reported by /healthz.
func WithSources(names []string) Option {
	return func(s *Server) {
		s.sources = names
	}
}

// New creates a Server around searcher.
func New(searcher *search.Searcher, opts ...Option) *Server {
	s := &Server{
		searcher: searcher,
		logger:   zap.NewNop(),
		layout:   "force",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger(s.logger))

	router.Get("/", s.handlePage)
	router.Get("/healthz", s.handleHealth)
	router.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
	})

	return router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// Two provider calls with their own timeouts may run per request.
		WriteTimeout: 2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// graphResponse is the body of a successful /api/graph call.
type graphResponse struct {
	*search.Result
	Elements viz.CytoscapeElements `json:"elements"`
	Status   string                `json:"status"`
}
