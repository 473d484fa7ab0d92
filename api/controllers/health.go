package controllers

import (
	"net/http"

	"github.com/angelmondragon/laundrypro-storefront/api/responses"
	"github.com/angelmondragon/laundrypro-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
	pkgredis "github.com/angelmondragon/laundrypro-storefront/pkg/redis"
)

const envHeader = "X-LaundryPro-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks redis when it is configured; a nil pinger reports ready.
func HealthReady(cfg *config.Config, pinger pkgredis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
