package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	authUseCase "github.com/allisson/secretkeeper/internal/auth/usecase"
	apperrors "github.com/allisson/secretkeeper/internal/errors"
	"github.com/allisson/secretkeeper/internal/httputil"
)

// AdminAuthenticationMiddleware authenticates administrators via "Authorization: Bearer actor:token".
//
// The bearer prefix is case-insensitive. The actor name selects the configured Argon2id hash the
// token is verified against. On success the actor is stored in the request context (see GetActor);
// on any failure the request is aborted with 401 before reaching the handler.
//
// Usage:
//
//	group := router.Group("/v1/secrets")
//	group.Use(AdminAuthenticationMiddleware(adminUseCase, logger))
func AdminAuthenticationMiddleware(adminUseCase authUseCase.AdminUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		actorName, token, ok := authDomain.ParseBearerValue(authHeader[len(bearerPrefix):])
		if !ok {
			logger.Debug("authentication failed: bearer value is not actor:token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		actor, err := adminUseCase.Authenticate(c.Request.Context(), actorName, token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("actor", actorName),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actor))

		logger.Debug("authentication successful", slog.String("actor", actor.Name))

		c.Next()
	}
}
