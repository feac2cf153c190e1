package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns the otelgin server span middleware, or a pass-through when
// tracing is disabled.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanErrorMarker tags the server span with request_id and caller_id and
// marks it failed for 4xx/5xx responses. It must run after Tracing, and the
// tags are written once the handler chain returned so that the caller set by
// Authenticate is visible.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if callerID := GetCallerID(c); callerID != "" {
			span.SetAttributes(attribute.String("caller_id", callerID))
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			return
		}
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		} else {
			span.SetStatus(codes.Error, "Client Error")
		}
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
}
