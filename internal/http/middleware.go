package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
)

// CustomLoggerMiddleware logs each request at info level with slog, including the request ID.
// Query strings are not logged.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return requestLogger(logger, slog.LevelInfo)
}

func requestLogger(logger *slog.Logger, level slog.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		if id := requestid.Get(c); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		logger.Log(c.Request.Context(), level, "http request", attrs...)
	}
}
