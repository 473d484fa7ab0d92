package middleware

import (
	"net/http"
	"time"

	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	"github.com/angelmondragon/laundrypro-storefront/pkg/config"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

// Session resolves the visitor's session from its cookie, starting a new one
// when the cookie is missing or stale, and provisions it on the request context.
func Session(manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *session.Session
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				sess, _ = manager.Get(cookie.Value)
			}
			if sess == nil {
				sess = manager.Start()
				http.SetCookie(w, sessionCookie(cfg, sess.ID))
			}
			manager.Touch(sess)

			ctx := session.WithSession(r.Context(), sess)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sess.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionCookie(cfg config.SessionConfig, id string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpireSessionCookie clears the session cookie on the client.
func ExpireSessionCookie(w http.ResponseWriter, cfg config.SessionConfig) {
	c := sessionCookie(cfg, "")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}
