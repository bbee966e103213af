package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()

	var pb dto.Metric
	require.NoError(t, m.Write(&pb))

	switch {
	case pb.Counter != nil:
		return pb.Counter.GetValue()
	case pb.Gauge != nil:
		return pb.Gauge.GetValue()
	}
	t.Fatalf("unsupported metric type")
	return 0
}

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.BuildStarted()

	assert.Equal(t, 1.0, value(t, a.BuildsStarted))
	assert.Equal(t, 0.0, value(t, b.BuildsStarted))
}

func TestBuildLifecycle(t *testing.T) {
	m := NewMetrics()

	m.BuildStarted()
	m.BuildStarted()
	assert.Equal(t, 2.0, value(t, m.BuildsActive))

	m.BuildFinished("completed", time.Second)
	m.BuildFinished("cancelled", time.Millisecond)

	assert.Equal(t, 0.0, value(t, m.BuildsActive))
	assert.Equal(t, 1.0, value(t, m.BuildsFinished.WithLabelValues("completed")))
	assert.Equal(t, 1.0, value(t, m.BuildsFinished.WithLabelValues("cancelled")))

	snap := m.GetSnapshot()
	assert.Equal(t, int64(2), snap.BuildsStarted)
	assert.Equal(t, int64(2), snap.BuildsFinished)
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/workspaces/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/metrics", Handler(m))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/workspaces/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, 1.0, value(t, m.RequestsTotal.WithLabelValues("GET", "/workspaces/:id", "404")))
	assert.Equal(t, int64(1), m.GetSnapshot().TotalErrors)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "appcopro_http_requests_total")
	assert.Contains(t, w.Body.String(), "appcopro_uptime_seconds")
}

func TestTimerNilSafe(t *testing.T) {
	var timer *Timer
	assert.NotPanics(t, func() { timer.Stop("success") })

	m := NewMetrics()
	NewTimer(m, "edit").Stop("failure")
	assert.Equal(t, 1.0, value(t, m.IconCalls.WithLabelValues("edit", "failure")))
}
