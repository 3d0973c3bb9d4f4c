package tracing

import "context"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionIDFromContext returns the shell session id stored in ctx, or "".
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithSessionID stores a session id in ctx. An empty id leaves ctx as is.
func ContextWithSessionID(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey, sessionID)
}
