package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/laundrypro-storefront/api/responses"
	"github.com/angelmondragon/laundrypro-storefront/internal/backend"
	pkgAuth "github.com/angelmondragon/laundrypro-storefront/pkg/auth"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

// LoginHint advertises where clients should send users to sign in.
func LoginHint(loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if loginURL != "" {
				w.Header().Set(responses.HeaderLoginURL, loginURL)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BearerAuth forwards the caller's bearer credential to the backend. Requests
// without one continue anonymously. JWTs that are already expired are rejected
// here so no backend call is made with them.
func BearerAuth(logg *logger.Logger, now func() time.Time) func(http.Handler) http.Handler {
	if now == nil {
		now = time.Now
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := pkgAuth.BearerToken(raw)
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "malformed authorization header"))
				return
			}

			ctx := r.Context()
			claims, err := pkgAuth.InspectToken(token, now())
			switch {
			case errors.Is(err, pkgAuth.ErrTokenExpired):
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "session expired, please sign in again"))
				return
			case err == nil && logg != nil && claims.Subject != "":
				ctx = logg.WithField(ctx, "user_id", claims.Subject)
			}

			next.ServeHTTP(w, r.WithContext(backend.WithBearerToken(ctx, token)))
		})
	}
}
