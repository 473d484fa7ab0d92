package controllers

import (
	"net/http"

	"github.com/angelmondragon/laundrypro-storefront/api/middleware"
	"github.com/angelmondragon/laundrypro-storefront/api/responses"
	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	"github.com/angelmondragon/laundrypro-storefront/pkg/config"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
)

// Logout tears down the session and its stores.
func Logout(manager *session.Manager, cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())
		manager.End(sess.ID)
		middleware.ExpireSessionCookie(w, cfg)
		if logg != nil {
			logg.Info(r.Context(), "session.ended")
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
