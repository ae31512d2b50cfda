package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	authMocks "github.com/allisson/secretkeeper/internal/auth/http/mocks"
	"github.com/allisson/secretkeeper/internal/httputil"
)

// TestMain sets Gin to test mode and checks for leaked limiter cleanup goroutines.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthRouter(t *testing.T, uc *authMocks.MockAdminUseCase, handlerCalled *bool) *gin.Engine {
	t.Helper()
	router := gin.New()
	router.Use(AdminAuthenticationMiddleware(uc, createTestLogger()))
	router.GET("/test", func(c *gin.Context) {
		*handlerCalled = true
		actor, ok := GetActor(c.Request.Context())
		require.True(t, ok, "actor should be in context")
		c.JSON(http.StatusOK, gin.H{"actor": actor.Name})
	})
	return router
}

func TestAdminAuthenticationMiddleware_Success(t *testing.T) {
	prefixes := []string{"Bearer ", "bearer ", "BEARER "}

	for _, prefix := range prefixes {
		t.Run(prefix, func(t *testing.T) {
			uc := authMocks.NewMockAdminUseCase(t)
			uc.On("Authenticate", mock.Anything, "admin", "tok").
				Return(&authDomain.Actor{Name: "admin"}, nil).Once()

			var called bool
			router := newAuthRouter(t, uc, &called)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.Header.Set("Authorization", prefix+"admin:tok")
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, called)
			assert.JSONEq(t, `{"actor":"admin"}`, w.Body.String())
		})
	}
}

func TestAdminAuthenticationMiddleware_Rejects(t *testing.T) {
	headers := map[string]string{
		"Missing":       "",
		"WrongScheme":   "Basic YWRtaW46dG9r",
		"PrefixOnly":    "Bearer ",
		"NoActor":       "Bearer tok",
		"EmptyToken":    "Bearer admin:",
		"ShortHeader":   "Bear",
		"EmptyActorTok": "Bearer :tok",
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			uc := authMocks.NewMockAdminUseCase(t)
			var called bool
			router := newAuthRouter(t, uc, &called)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, called)
			uc.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAdminAuthenticationMiddleware_InvalidCredentials(t *testing.T) {
	uc := authMocks.NewMockAdminUseCase(t)
	uc.On("Authenticate", mock.Anything, "admin", "wrong").
		Return(nil, authDomain.ErrInvalidCredentials).Once()

	var called bool
	router := newAuthRouter(t, uc, &called)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer admin:wrong")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)

	var resp httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unauthorized", resp.Error)
}

func TestGetActor(t *testing.T) {
	_, ok := GetActor(context.Background())
	assert.False(t, ok)

	_, ok = GetActor(WithActor(context.Background(), nil))
	assert.False(t, ok)

	actor, ok := GetActor(WithActor(context.Background(), &authDomain.Actor{Name: "admin"}))
	assert.True(t, ok)
	assert.Equal(t, "admin", actor.Name)
}
