package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware returns the CORS middleware for the admin API, or nil when CORS is
// disabled or no usable origin is configured. Admin clients authenticate with a bearer
// token, so cookies are never allowed cross-origin.
func createCORSMiddleware(enabled bool, allowOrigins string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins, ignored := parseOrigins(allowOrigins)
	for _, origin := range ignored {
		logger.Warn("ignoring CORS origin without http or https scheme", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured, CORS will not be applied")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(adminCORSConfig(origins))
}

// adminCORSConfig allows exactly what the /v1/secrets routes accept.
func adminCORSConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"X-Request-Id", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           time.Hour,
	}
}

// parseOrigins splits a comma-separated origin list. Entries without an http or https
// scheme are returned in ignored since the cors package rejects them at startup.
func parseOrigins(allowOrigins string) (origins, ignored []string) {
	for _, part := range strings.Split(allowOrigins, ",") {
		origin := strings.TrimSpace(part)
		switch {
		case origin == "":
		case strings.HasPrefix(origin, "http://"), strings.HasPrefix(origin, "https://"):
			origins = append(origins, strings.TrimSuffix(origin, "/"))
		default:
			ignored = append(ignored, origin)
		}
	}
	return origins, ignored
}
