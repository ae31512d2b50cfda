package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/secretkeeper/internal/auth/domain"
	authMocks "github.com/allisson/secretkeeper/internal/auth/http/mocks"
	"github.com/allisson/secretkeeper/internal/config"
	"github.com/allisson/secretkeeper/internal/metrics"
	secretsDomain "github.com/allisson/secretkeeper/internal/secrets/domain"
	secretsHTTP "github.com/allisson/secretkeeper/internal/secrets/http"
	secretsMocks "github.com/allisson/secretkeeper/internal/secrets/usecase/mocks"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServer() *Server {
	return NewServer(nil, "localhost", 8080, discardLogger())
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthHandler(t *testing.T) {
	server := createTestServer()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeBody(t, w)["status"])
}

func TestReadinessHandler(t *testing.T) {
	t.Run("Success_StoreDisabled", func(t *testing.T) {
		server := createTestServer()

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "ready", body["status"])
		assert.Equal(t, "disabled", body["components"].(map[string]any)["database"])
	})

	t.Run("Success_PingOK", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		sqlMock.ExpectPing()

		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", decodeBody(t, w)["components"].(map[string]any)["database"])
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Error_PingFails", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		sqlMock.ExpectPing().WillReturnError(errors.New("connection refused"))

		server := NewServer(db, "localhost", 8080, discardLogger())

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

		server.readinessHandler(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "not_ready", body["status"])
		assert.Equal(t, "error", body["components"].(map[string]any)["database"])
	})
}

func TestCustomLoggerMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", decodeBody(t, w)["message"])

	requestID := w.Header().Get("X-Request-Id")
	parsed, err := uuid.Parse(requestID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestRequestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	router := gin.New()
	router.Use(requestLogger(logger, slog.LevelDebug))
	router.GET("/quiet", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quiet", nil))
	assert.Empty(t, buf.String(), "debug entries are filtered at info level")

	router = gin.New()
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/v1/secrets", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/secrets?token=abc", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "/v1/secrets", entry["path"])
	assert.NotContains(t, buf.String(), "token=abc")
}

func TestRecoveryMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// setupRoutedServer builds a server through SetupRouter with mocked use cases.
func setupRoutedServer(
	t *testing.T,
	cfg *config.Config,
) (*Server, *secretsMocks.MockSecretUseCase, *authMocks.MockAdminUseCase) {
	t.Helper()

	logger := discardLogger()
	secretUseCase := secretsMocks.NewMockSecretUseCase(t)
	adminUseCase := authMocks.NewMockAdminUseCase(t)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := NewServer(nil, "localhost", 8080, logger)
	server.SetupRouter(ctx, cfg, secretsHTTP.NewSecretHandler(secretUseCase, logger), adminUseCase, nil)

	return server, secretUseCase, adminUseCase
}

func TestSetupRouter(t *testing.T) {
	cfg := &config.Config{}

	t.Run("Health endpoints are public", func(t *testing.T) {
		server, _, _ := setupRoutedServer(t, cfg)

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Secrets require authentication", func(t *testing.T) {
		server, _, _ := setupRoutedServer(t, cfg)

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secrets", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Rejected credentials never reach the use case", func(t *testing.T) {
		server, _, adminUseCase := setupRoutedServer(t, cfg)
		adminUseCase.On("Authenticate", mock.Anything, "alice", "wrong").
			Return(nil, authDomain.ErrInvalidCredentials).
			Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/secrets/OPENAI_API_KEY", nil)
		req.Header.Set("Authorization", "Bearer alice:wrong")
		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Authenticated listing", func(t *testing.T) {
		server, secretUseCase, adminUseCase := setupRoutedServer(t, cfg)
		adminUseCase.On("Authenticate", mock.Anything, "alice", "token").
			Return(&authDomain.Actor{Name: "alice"}, nil).
			Once()
		secretUseCase.On("List", mock.Anything).Return(&secretsDomain.Listing{
			Unset: []secretsDomain.Declaration{{Name: "OPENAI_API_KEY", Description: "OpenAI API key"}},
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/secrets", nil)
		req.Header.Set("Authorization", "bearer alice:token")
		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		unset := decodeBody(t, w)["unset"].([]any)
		require.Len(t, unset, 1)
		assert.Equal(t, "OPENAI_API_KEY", unset[0].(map[string]any)["name"])
	})

	t.Run("Rate limited per actor", func(t *testing.T) {
		limited := &config.Config{RateLimitEnabled: true, RateLimitRequestsPerSec: 0.001, RateLimitBurst: 1}
		server, secretUseCase, adminUseCase := setupRoutedServer(t, limited)
		adminUseCase.On("Authenticate", mock.Anything, "alice", "token").
			Return(&authDomain.Actor{Name: "alice"}, nil).
			Twice()
		secretUseCase.On("List", mock.Anything).Return(&secretsDomain.Listing{}, nil).Once()

		codes := make([]int, 0, 2)
		for range 2 {
			req := httptest.NewRequest(http.MethodGet, "/v1/secrets", nil)
			req.Header.Set("Authorization", "Bearer alice:token")
			w := httptest.NewRecorder()
			server.GetHandler().ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("Unknown route", func(t *testing.T) {
		server, _, _ := setupRoutedServer(t, cfg)

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("No metrics endpoint on the admin server", func(t *testing.T) {
		server, _, _ := setupRoutedServer(t, cfg)

		w := httptest.NewRecorder()
		server.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "127.0.0.1", 0, discardLogger())
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, server.Shutdown(shutdownCtx))
	assert.NoError(t, <-errChan)
}

func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("secretkeeper")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	metricsServer := NewMetricsServer("localhost", 8081, logger, provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "go_goroutines")
	assert.Empty(t, buf.String(), "scrapes are logged at debug level")

	w = httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/secrets", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "the metrics listener never serves admin routes")
}

func TestMetricsServer_NilProvider(t *testing.T) {
	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), nil)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
