package types

import "context"

type contextKey string

const (
	CtxRequestID contextKey = "ctx_request_id"
	CtxUserID    contextKey = "ctx_user_id"
)

// GetRequestID returns the request id from context, or empty
func GetRequestID(ctx context.Context) string {
	return getString(ctx, CtxRequestID)
}

// GetUserID returns the acting user id from context, or empty
func GetUserID(ctx context.Context) string {
	return getString(ctx, CtxUserID)
}

// WithRequestID stores the request id on the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, CtxRequestID, requestID)
}

// WithUserID stores the acting user id on the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

func getString(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
