package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.json")
	cfg.Build.DelayScale = 0
	cfg.Artifact.SizeBytes = 2048
	cfg.Preview.Enabled = false
	cfg.RateLimit.Enabled = false
	return cfg
}

func TestNewServerRoutes(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	for _, path := range []string{"/", "/health", "/config/defaults", "/history", "/workspaces", "/metrics"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Trace-ID"), path)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "appcopro_http_requests_total")
}

func TestNewServerStepsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Build.StepsFile = filepath.Join(t.TempDir(), "steps.yaml")
	require.NoError(t, os.WriteFile(cfg.Build.StepsFile, []byte(strings.Join([]string{
		"steps:",
		"  - message: compiling",
		"    delay_ms: 10",
		"    progress: 50",
		"  - message: done",
		"    delay_ms: 10",
		"    progress: 100",
	}, "\n")), 0o644))

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	_ = srv.Close()

	cfg.Build.StepsFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = NewServer(cfg)
	assert.Error(t, err)
}

func TestNewServerInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Build.DelayScale = -1
	_, err := NewServer(cfg)
	assert.Error(t, err)
}
