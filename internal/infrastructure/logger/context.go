package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// CallerIDKey is the context key for the authenticated caller, when present
	CallerIDKey contextKey = "caller_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID in ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithCallerID stores the caller identity in ctx
func WithCallerID(ctx context.Context, callerID string) context.Context {
	return context.WithValue(ctx, CallerIDKey, callerID)
}

// GetCallerID retrieves the caller identity from context
func GetCallerID(ctx context.Context) string {
	if id, ok := ctx.Value(CallerIDKey).(string); ok {
		return id
	}
	return ""
}

// L returns the context logger enriched with trace_id, span_id, request_id
// and caller_id when they are present.
//
//	logger.L(ctx).Info("order created", zap.String("order_number", n))
func L(ctx context.Context) *zap.Logger {
	l := FromContext(ctx)

	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		l = l.With(
			zap.String("trace_id", spanCtx.TraceID().String()),
			zap.String("span_id", spanCtx.SpanID().String()),
		)
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		l = l.With(zap.String("request_id", requestID))
	}
	if callerID := GetCallerID(ctx); callerID != "" {
		l = l.With(zap.String("caller_id", callerID))
	}
	return l
}
