package backend

import "context"

type ctxKey int

const (
	bearerTokenKey ctxKey = iota
	requestIDKey
)

const headerRequestID = "X-Request-ID"

// WithBearerToken attaches the caller's credential so backend requests carry it.
func WithBearerToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}
	return context.WithValue(ctx, bearerTokenKey, token)
}

func BearerTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}

// WithRequestID propagates the inbound request id to the backend.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
