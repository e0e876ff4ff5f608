package logger

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Structured log field keys.
const (
	FieldRequestID = "request_id"
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
)

// WithFields attaches fields to logger, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}

// WithRequestID tags logger with a request id. Blank ids are ignored.
func WithRequestID(logger *zap.Logger, id string) *zap.Logger {
	id = strings.TrimSpace(id)
	if id == "" {
		return WithFields(logger)
	}
	return WithFields(logger, zap.String(FieldRequestID, id))
}

// ModelFields describes the provider and model of an LLM call, omitting
// empty values.
func ModelFields(provider, model string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if p := strings.TrimSpace(provider); p != "" {
		fields = append(fields, zap.String(FieldProvider, p))
	}
	if m := strings.TrimSpace(model); m != "" {
		fields = append(fields, zap.String(FieldModel, m))
	}
	return fields
}

type requestIDKey struct{}

// ContextWithRequestID stores a request id in ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id stored in ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
