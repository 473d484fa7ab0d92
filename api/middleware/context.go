package middleware

import (
	"net/http"

	"github.com/angelmondragon/laundrypro-storefront/internal/session"
)

// sessionScope is the identity used to namespace rate limits and idempotency
// records: the session id when one is provisioned, else the client address.
func sessionScope(r *http.Request) string {
	if s, ok := session.Lookup(r.Context()); ok {
		return "session:" + s.ID
	}
	return "ip:" + clientIP(r)
}
