package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves the Prometheus scrape endpoint on its own listener so
// scrapes never compete with quote traffic. Liveness/readiness live on
// the main server (internal/health), not here.
type Server struct {
	server *http.Server
	logger *zap.Logger
}

func NewServer(addr string, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		server: &http.Server{
			Addr:    addr,
			Handler: mux,
			// scrapes are small GETs; generous write timeout for large
			// label sets, short read timeout
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving scrapes until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("metrics endpoint listening", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics listener: %w", err)
	}
	return nil
}

// Shutdown stops the listener, draining in-flight scrapes.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("stopping metrics endpoint")
	return s.server.Shutdown(ctx)
}

// Handler exposes the scrape mux for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
