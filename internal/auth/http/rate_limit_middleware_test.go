package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
)

func newRateLimitedRouter(t *testing.T, rps float64, burst int) *gin.Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if name := c.GetHeader("X-Actor"); name != "" {
			c.Request = c.Request.WithContext(WithActor(c.Request.Context(), &authDomain.Actor{Name: name}))
		}
		c.Next()
	})
	router.Use(RateLimitMiddleware(ctx, rps, burst, createTestLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func doActorRequest(router *gin.Engine, actor string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if actor != "" {
		req.Header.Set("X-Actor", actor)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_AllowsRequestsWithinLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 10, 20)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doActorRequest(router, "admin").Code)
	}
}

func TestRateLimitMiddleware_BlocksRequestsExceedingLimit(t *testing.T) {
	router := newRateLimitedRouter(t, 1, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, doActorRequest(router, "admin").Code)
	}

	w := doActorRequest(router, "admin")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimitMiddleware_IndependentPerActor(t *testing.T) {
	router := newRateLimitedRouter(t, 1, 1)

	assert.Equal(t, http.StatusOK, doActorRequest(router, "admin").Code)
	assert.Equal(t, http.StatusTooManyRequests, doActorRequest(router, "admin").Code)
	assert.Equal(t, http.StatusOK, doActorRequest(router, "actor2").Code)
}

func TestRateLimitMiddleware_RequiresActor(t *testing.T) {
	router := newRateLimitedRouter(t, 10, 10)

	assert.Equal(t, http.StatusUnauthorized, doActorRequest(router, "").Code)
}

func TestRateLimiterStore_EvictIdle(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	store.getLimiter("old")

	store.evictIdle(time.Now().Add(time.Minute))

	_, ok := store.limiters.Load("old")
	assert.False(t, ok)
}

func TestRateLimiterStore_ReusesLimiter(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	assert.Same(t, store.getLimiter("admin"), store.getLimiter("admin"))
}
