package session

import "context"

type ctxKey struct{}

// WithSession provisions s for downstream handlers.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// Lookup returns the provisioned session, if any.
func Lookup(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}

// FromContext returns the provisioned session and panics when there is none.
// Reaching a store-backed handler without the session middleware is a wiring bug.
func FromContext(ctx context.Context) *Session {
	s, ok := Lookup(ctx)
	if !ok {
		panic("session: no session provisioned in context")
	}
	return s
}
