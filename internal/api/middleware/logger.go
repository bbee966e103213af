package middleware

import (
	"time"

	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/AppCoPro/backend/internal/infrastructure/tracing"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlowRequest is the latency above which successful requests log at info
const SlowRequest = 2 * time.Second

// RequestLogger logs failed and slow requests with their trace id.
// Long-lived stream connections are logged by the stream handler instead.
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("trace_id", string(tracing.GetTraceID(c.Request.Context()))),
		}

		switch {
		case status >= 500:
			logger.Error("Request failed", append(fields, zap.String("errors", c.Errors.String()))...)
		case status >= 400:
			logger.Warn("Request rejected", fields...)
		case latency > SlowRequest && !c.IsWebsocket():
			logger.Info("Slow request", fields...)
		default:
			logger.Debug("Request", fields...)
		}
	}
}
