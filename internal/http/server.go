// Package http provides the admin HTTP server, its router and middleware.
package http

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/secretkeeper/internal/auth/http"
	authUseCase "github.com/allisson/secretkeeper/internal/auth/usecase"
	"github.com/allisson/secretkeeper/internal/config"
	"github.com/allisson/secretkeeper/internal/metrics"
	secretsHTTP "github.com/allisson/secretkeeper/internal/secrets/http"
)

// Server is the admin HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. db is nil when the store is not configured.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// newHTTPServer returns an http.Server with the timeouts shared by the admin and metrics listeners.
func newHTTPServer(host string, port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// listenAndServe blocks until server stops. A graceful shutdown is not an error.
func listenAndServe(server *http.Server, logger *slog.Logger, name string) error {
	logger.Info("starting "+name+" server", slog.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start %s server: %w", name, err)
	}
	return nil
}

// SetupRouter registers middleware, health endpoints and the /v1/secrets admin routes.
// ctx bounds background work started by middleware, such as limiter eviction.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	secretHandler *secretsHTTP.SecretHandler,
	adminUseCase authUseCase.AdminUseCase,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	secrets := v1.Group("/secrets")
	secrets.Use(authHTTP.AdminAuthenticationMiddleware(adminUseCase, s.logger))
	if cfg.RateLimitEnabled {
		secrets.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	{
		secrets.GET("", secretHandler.ListHandler)
		secrets.GET("/:name", secretHandler.GetHandler)
		secrets.POST("/:name", secretHandler.SetHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router
	return listenAndServe(s.server, s.logger, "http")
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness. Without a configured store the database is "disabled"
// and the server is still ready, since resolution falls back to environment overrides.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"components": gin.H{"database": "disabled"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
