package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStartSpanParentChild(t *testing.T) {
	tracer := New("test", zap.NewNop())
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, _ := tracer.StartSpan(ctx, "child")

	assert.NotEmpty(t, root.TraceID)
	assert.Empty(t, root.ParentID)
	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
}

func TestInjectExtractRoundTrip(t *testing.T) {
	tracer := New("test", zap.NewNop())
	defer tracer.Close()

	span, ctx := tracer.StartSpan(context.Background(), "outbound")

	header := http.Header{}
	Inject(ctx, header)
	assert.Equal(t, string(span.TraceID), header.Get(HeaderTraceID))

	got := Extract(context.Background(), header)
	assert.Equal(t, span.TraceID, GetTraceID(got))
	assert.Equal(t, span.SpanID, GetSpanID(got))
}

func TestExtractIgnoresMalformedIDs(t *testing.T) {
	header := http.Header{}
	header.Set(HeaderTraceID, "req_upstream")
	header.Set(HeaderSpanID, "req_01ARZ3NDEKTSV4RRFFQ69G5FAV")

	got := Extract(context.Background(), header)
	assert.Empty(t, GetTraceID(got))
	assert.Empty(t, GetSpanID(got))

	tracer := New("test", zap.NewNop())
	defer tracer.Close()
	span, _ := tracer.StartSpan(got, "inbound")
	assert.Contains(t, string(span.TraceID), "req_")
}

func TestHTTPMiddlewareLogsSpan(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zap.DebugLevel)
	tracer := New("test", zap.New(core))

	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(HeaderTraceID, "req_01ARZ3NDEKTSV4RRFFQ69G5FAV")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req_01ARZ3NDEKTSV4RRFFQ69G5FAV", w.Header().Get(HeaderTraceID))
	assert.NotEmpty(t, w.Header().Get(HeaderSpanID))

	tracer.Close()

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "GET /health", entries[0].ContextMap()["operation"])
}
