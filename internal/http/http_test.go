package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/onetime/internal/config"
	"github.com/allisson/onetime/internal/metrics"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
	secretsHTTP "github.com/allisson/onetime/internal/secrets/http"
	"github.com/allisson/onetime/internal/secrets/usecase/mocks"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeStore is a StorePinger returning a fixed error.
type fakeStore struct {
	err error
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestServer creates a test server with a discarding logger.
func createTestServer(store StorePinger) *Server {
	return NewServer(store, "localhost", 8080, discardLogger())
}

// testConfig returns a configuration with rate limiting disabled.
func testConfig() *config.Config {
	return &config.Config{
		LogLevel:           "error",
		SecretMaxSizeBytes: 1024,
		MetricsNamespace:   "onetime_test",
	}
}

// setupFullRouter builds the complete router around a mocked use case.
func setupFullRouter(
	t *testing.T,
	cfg *config.Config,
	metricsProvider *metrics.Provider,
) (*Server, *mocks.MockSecretUseCase) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	useCase := mocks.NewMockSecretUseCase(t)
	handler := secretsHTTP.NewSecretHandler(useCase, cfg.SecretMaxSizeBytes, cfg.PublicBaseURL, discardLogger())

	server := createTestServer(&fakeStore{})
	server.SetupRouter(ctx, cfg, handler, metricsProvider)

	return server, useCase
}

// TestHealthHandler tests the health check endpoint handler.
func TestHealthHandler(t *testing.T) {
	server := createTestServer(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	server.healthHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "healthy", response["status"])
}

func TestReadinessHandler(t *testing.T) {
	tests := []struct {
		name            string
		store           StorePinger
		expectedCode    int
		expectedStatus  string
		expectedStoreOK string
	}{
		{
			name:            "nil store",
			store:           nil,
			expectedCode:    http.StatusServiceUnavailable,
			expectedStatus:  "not_ready",
			expectedStoreOK: "error",
		},
		{
			name:            "store ping fails",
			store:           &fakeStore{err: secretsDomain.ErrStoreUnavailable},
			expectedCode:    http.StatusServiceUnavailable,
			expectedStatus:  "not_ready",
			expectedStoreOK: "error",
		},
		{
			name:            "store ping succeeds",
			store:           &fakeStore{},
			expectedCode:    http.StatusOK,
			expectedStatus:  "ready",
			expectedStoreOK: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := createTestServer(tt.store)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

			server.readinessHandler(c)

			assert.Equal(t, tt.expectedCode, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedStatus, response["status"])

			components, ok := response["components"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedStoreOK, components["store"])
		})
	}
}

// TestCustomLoggerMiddleware_OmitsQueryString verifies the reveal password never reaches the log.
func TestCustomLoggerMiddleware_OmitsQueryString(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))
	router.GET("/v1/secrets/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	id := uuid.New().String()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/secrets/"+id+"?password=hunter2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "/v1/secrets/:id", entry["route"])
	assert.Equal(t, "/v1/secrets/"+id, entry["path"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.NotEmpty(t, entry["request_id"])
	assert.NotContains(t, buf.String(), "hunter2")
}

// TestRecoveryMiddleware verifies panics become a generic 500 without dumping headers.
func TestRecoveryMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RecoveryMiddleware(logger))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(secretsHTTP.PasswordHeader, "hunter2")

	// Should not panic - Recovery middleware catches it
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error","message":"An internal error occurred"}`, w.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
	assert.NotContains(t, buf.String(), "hunter2")
}

// TestRouter_HealthEndpoint tests the health endpoint through the full router.
func TestRouter_HealthEndpoint(t *testing.T) {
	server, _ := setupFullRouter(t, testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

// TestRouter_ReadyEndpoint tests the ready endpoint through the full router.
func TestRouter_ReadyEndpoint(t *testing.T) {
	server, _ := setupFullRouter(t, testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready","components":{"store":"ok"}}`, w.Body.String())
}

// TestRouter_NotFoundEndpoint tests 404 handling.
func TestRouter_NotFoundEndpoint(t *testing.T) {
	server, _ := setupFullRouter(t, testConfig(), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SecretRoutes(t *testing.T) {
	server, useCase := setupFullRouter(t, testConfig(), nil)

	stored := &secretsDomain.StoredSecret{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		TTL:       secretsDomain.DefaultTTL,
	}
	useCase.On("Create", mock.Anything, []byte("launch codes"), "orange").Return(stored, nil).Once()
	useCase.On("Reveal", mock.Anything, stored.ID, "orange").
		Return(&secretsDomain.Secret{ID: stored.ID, Plaintext: []byte("launch codes")}, nil).
		Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(
		http.MethodPost,
		"/v1/secrets",
		strings.NewReader(`{"secret_content":"launch codes","password":"orange"}`),
	)
	req.Header.Set("Content-Type", "application/json")
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/v1/secrets/"+stored.ID.String()+"?password=orange", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+stored.ID.String()+`","secret_content":"launch codes"}`, w.Body.String())
}

func TestRouter_RateLimitAppliesToSecretRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequestsPerSec = 0.001
	cfg.RateLimitBurst = 1

	server, _ := setupFullRouter(t, cfg, nil)

	// Malformed identifiers never reach the use case, so no expectations are needed.
	send := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "203.0.113.7:4242"
		server.GetHandler().ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNotFound, send("/v1/secrets/nope?password=x").Code)

	limited := send("/v1/secrets/nope?password=x")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.NotEmpty(t, limited.Header().Get("Retry-After"))

	// Health endpoints are not rate limited.
	assert.Equal(t, http.StatusOK, send("/health").Code)
}

func TestRouter_MetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	provider, err := metrics.NewProvider("onetime_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server, _ := setupFullRouter(t, testConfig(), provider)

	id := uuid.New().String()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/secrets/"+id, nil)
	server.GetHandler().ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	provider.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Contains(t, body, "onetime_test_http_requests_total")
	assert.NotContains(t, body, id)
}

// TestServer_ShutdownGracefully tests graceful server shutdown.
func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(&fakeStore{}, "127.0.0.1", 0, discardLogger())
	server.SetupRouter(context.Background(), testConfig(), secretsHTTP.NewSecretHandler(
		mocks.NewMockSecretUseCase(t), 1024, "", discardLogger(),
	), nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	assert.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsServer.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

// TestServer_NoMetricsEndpoint tests that the main server does NOT expose /metrics.
func TestServer_NoMetricsEndpoint(t *testing.T) {
	provider, err := metrics.NewProvider("onetime_test")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	server, _ := setupFullRouter(t, testConfig(), provider)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	server.GetHandler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_StartFailsOnBusyPort(t *testing.T) {
	listener := httptest.NewServer(http.NotFoundHandler())
	defer listener.Close()

	host, port, found := strings.Cut(strings.TrimPrefix(listener.URL, "http://"), ":")
	require.True(t, found)

	portNumber, err := strconv.Atoi(port)
	require.NoError(t, err)

	server := NewServer(nil, host, portNumber, discardLogger())
	server.SetupRouter(context.Background(), testConfig(), secretsHTTP.NewSecretHandler(
		mocks.NewMockSecretUseCase(t), 1024, "", discardLogger(),
	), nil)

	err = server.Start(context.Background())
	assert.ErrorContains(t, err, "failed to start server")
}
