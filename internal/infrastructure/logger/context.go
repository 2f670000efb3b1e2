package logger

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

// RunIDKey is the context key for the invocation run id
const RunIDKey contextKey = "run_id"

// WithRunID tags the context and the logger with a fresh run id.
// Every log line of one CLI invocation then shares the same run_id.
func WithRunID(ctx context.Context, logger *zap.Logger) (context.Context, *zap.Logger) {
	runID := uuid.NewString()
	return context.WithValue(ctx, RunIDKey, runID), logger.With(zap.String("run_id", runID))
}

// GetRunID retrieves the run id from context
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithTraceContext adds trace_id and span_id to the logger from the context's span.
// If no valid span exists, returns the original logger unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}
