// Package server provides the HTTP server for the dappregistry API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/dappregistry/internal/metrics"
	"github.com/agentstation/dappregistry/internal/server/cache"
	"github.com/agentstation/dappregistry/internal/server/handlers"
	"github.com/agentstation/dappregistry/pkg/logging"
)

// Server serves the registry and store list over HTTP.
type Server struct {
	registry  handlers.Registry
	stores    handlers.Stores
	metrics   *metrics.Metrics
	cache     *cache.Cache
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
	http      *http.Server
}

// New creates a server. m may be nil, in which case /metrics is not served.
func New(registry handlers.Registry, stores handlers.Stores, m *metrics.Metrics, cfg Config, logger *zerolog.Logger) *Server {
	logger = logging.Named(logger, "server")

	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultConfig().CacheTTL
	}
	if cfg.PathPrefix == "" {
		cfg.PathPrefix = DefaultConfig().PathPrefix
	}

	s := &Server{
		registry:  registry,
		stores:    stores,
		metrics:   m,
		cache:     cache.New(cfg.CacheTTL, cfg.CacheTTL*2),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	logger.Debug().Str("addr", cfg.Addr()).Dur("cache_ttl", cfg.CacheTTL).Msg("Server instance created")
	return s
}

// Handler returns the routed handler with the middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
// within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("Starting HTTP server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")
	s.cache.Clear()
	return s.http.Shutdown(ctx)
}

// Cache returns the response cache.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// StartTime returns when the server was created.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
