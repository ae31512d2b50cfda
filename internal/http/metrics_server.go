package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/secretkeeper/internal/metrics"
)

// MetricsServer serves GET /metrics on its own listener, outside admin authentication.
// Scrapes are logged at debug level.
type MetricsServer struct {
	server *http.Server
	logger *slog.Logger
}

// NewMetricsServer creates a MetricsServer exposing provider. A nil provider serves only 404s.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	provider *metrics.Provider,
) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger, slog.LevelDebug))

	if provider != nil {
		router.GET("/metrics", gin.WrapH(provider.Handler()))
	}

	return &MetricsServer{
		server: newHTTPServer(host, port, router),
		logger: logger,
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *MetricsServer) GetHandler() http.Handler {
	return s.server.Handler
}

// Start blocks serving metrics until Shutdown is called.
func (s *MetricsServer) Start(ctx context.Context) error {
	return listenAndServe(s.server, s.logger, "metrics")
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down metrics server")
	return s.server.Shutdown(ctx)
}
