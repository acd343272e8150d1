package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

func serve(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	t.Run("no checks", func(t *testing.T) {
		rec := serve(t, NewServer(":0", nil, nil), "/healthz")

		require.Equal(t, http.StatusOK, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, StatusOK, resp.Status)
		assert.Empty(t, resp.Checks)
	})

	t.Run("failing check", func(t *testing.T) {
		s := NewServer(":0", nil, map[string]HealthCheck{
			"loop": func(context.Context) error { return nil },
			"save": func(context.Context) error { return errors.New("connection refused") },
		})
		rec := serve(t, s, "/healthz")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, StatusUnavailable, resp.Status)
		assert.Equal(t, map[string]string{"loop": StatusOK, "save": "connection refused"}, resp.Checks)
	})
}

func TestVersion(t *testing.T) {
	rec := serve(t, NewServer(":0", nil, nil), "/version")

	require.Equal(t, http.StatusOK, rec.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, domain.AppName, info.App)
	assert.Equal(t, domain.AppVersion, info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestMetricsEndpoint(t *testing.T) {
	s := NewServer(":0", nil, nil)
	serve(t, s, "/version")

	rec := serve(t, s, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestNoGameRoutes(t *testing.T) {
	s := NewServer(":0", nil, nil)
	for _, path := range []string{"/plants", "/api/v1/water", "/save"} {
		assert.Equal(t, http.StatusNotFound, serve(t, s, path).Code, path)
	}
}

func TestSecurityHeaders(t *testing.T) {
	rec := serve(t, NewServer(":0", nil, nil), "/healthz")

	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
	assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
	assert.Equal(t, HeaderValueXSSBlock, rec.Header().Get(HeaderXSSProtection))
	assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
}

func TestLoggingMiddleware_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/version", nil)
	req.Header.Set("Authorization", "Bearer mytoken")
	req.Header.Set("Cookie", "session=abc")
	req.Header.Set("User-Agent", "TestAgent")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	require.Contains(t, out, LogMsgRequestHeaders)
	assert.NotContains(t, out, "Bearer mytoken")
	assert.NotContains(t, out, "session=abc")
	assert.Contains(t, out, "TestAgent")
	assert.Contains(t, out, "trace_id")
}

func TestLoggingMiddleware_QuietPaths(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/metrics", nil))

	assert.False(t, strings.Contains(buf.String(), LogMsgRequestStarted))
}
