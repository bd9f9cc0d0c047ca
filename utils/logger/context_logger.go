package logger

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type contextKey string

// Context keys for request-scoped log attributes.
const (
	UserIDKey    contextKey = "user_id"
	RequestIDKey contextKey = "request_id"
	ProviderKey  contextKey = "provider"
	TokenIDKey   contextKey = "token_id"
	FlowKey      contextKey = "flow"
)

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, UserIDKey, id)
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// WithProvider records which OAuth provider the request is flowing through.
func WithProvider(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, ProviderKey, name)
}

// WithTokenID records the jti of the session token being handled.
func WithTokenID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TokenIDKey, id)
}

// WithFlow tags the sign-in flow kind, e.g. "credentials" or "oauth".
func WithFlow(ctx context.Context, flow string) context.Context {
	return context.WithValue(ctx, FlowKey, flow)
}

// GlobalContext is the process-wide ContextLogger, set by Init.
var GlobalContext *ContextLogger

// ContextLogger enriches log records with attributes carried in the context.
type ContextLogger struct {
	logger *slog.Logger
}

func NewContextLogger(logger *slog.Logger) *ContextLogger {
	return &ContextLogger{logger: logger}
}

// WithContext returns a logger carrying every context attribute that is set.
func (cl *ContextLogger) WithContext(ctx context.Context) *slog.Logger {
	logger := cl.logger

	if v, ok := ctx.Value(UserIDKey).(string); ok && v != "" {
		logger = logger.With("user_id", v)
	}
	if v, ok := ctx.Value(RequestIDKey).(string); ok && v != "" {
		logger = logger.With("request_id", v)
	}
	if v, ok := ctx.Value(ProviderKey).(string); ok && v != "" {
		logger = logger.With("auth.provider", v)
	}
	if v, ok := ctx.Value(TokenIDKey).(string); ok && v != "" {
		logger = logger.With("auth.token.id", v)
	}
	if v, ok := ctx.Value(FlowKey).(string); ok && v != "" {
		logger = logger.With("auth.flow", v)
	}

	return logger
}

// LogDuration emits a timing record for the given operation.
func (cl *ContextLogger) LogDuration(ctx context.Context, operation string, ms int64) {
	cl.WithContext(ctx).Info("operation completed",
		"operation", operation,
		"duration_ms", ms,
	)
}

// LogError emits an error record for the given operation.
func (cl *ContextLogger) LogError(ctx context.Context, operation string, err error) {
	cl.WithContext(ctx).Error("operation failed",
		"operation", operation,
		"error", err.Error(),
	)
}

// TraceContextHandler decorates records with trace_id and span_id when the
// context carries an active span, so stdout logs correlate with traces.
type TraceContextHandler struct {
	inner slog.Handler
}

func NewTraceContextHandler(inner slog.Handler) *TraceContextHandler {
	return &TraceContextHandler{inner: inner}
}

func (h *TraceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *TraceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, r)
}

func (h *TraceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TraceContextHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *TraceContextHandler) WithGroup(name string) slog.Handler {
	return &TraceContextHandler{inner: h.inner.WithGroup(name)}
}
