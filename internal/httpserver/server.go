// Package httpserver hosts the HTTP API: health, metrics and the module
// routes mounted under /api.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability/attr"
)

const (
	defaultAddr      = ":8080"
	defaultRateLimit = 5
	defaultRateBurst = 10
	shutdownTimeout  = 10 * time.Second
)

// Server owns the chi router and the listening http.Server.
type Server struct {
	router chi.Router
	api    chi.Router
	srv    *http.Server
	logger *slog.Logger
}

// New builds the router. Every /api route shares one per-IP limiter.
func New(cfg config.HTTPConfig, registry *prometheus.Registry, logger *slog.Logger) *Server {
	addr := cfg.Addr
	if addr == "" {
		addr = defaultAddr
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = defaultRateLimit
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = defaultRateBurst
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	}

	limiter := NewIPRateLimiter(limit, burst)
	api := chi.NewRouter()
	api.Use(RateLimitMiddleware(limiter))
	r.Mount("/api", api)

	return &Server{
		router: r,
		api:    api,
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// API is the rate-limited router modules mount their routes on.
func (s *Server) API() chi.Router { return s.api }

// Handler is the root handler, for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}
	s.logger.InfoContext(ctx, "HTTP server listening", attr.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	s.logger.Info("HTTP server stopped")
	return nil
}
