package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/laundrypro-storefront/api/controllers"
	"github.com/angelmondragon/laundrypro-storefront/api/middleware"
	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	checkoutsvc "github.com/angelmondragon/laundrypro-storefront/internal/checkout"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	"github.com/angelmondragon/laundrypro-storefront/pkg/config"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
	"github.com/angelmondragon/laundrypro-storefront/pkg/redis"
	"github.com/angelmondragon/laundrypro-storefront/pkg/telemetry"
)

const serviceName = "laundrypro-storefront"

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	sessions *session.Manager,
	catalogService *catalog.Catalog,
	checkoutCoordinator *checkoutsvc.Coordinator,
	ordersService orders.Service,
	metricsHandler http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		telemetry.TracingMiddleware(serviceName, "/health/live", "/health/ready", "/metrics"),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.LoginHint(cfg.App.LoginURL),
	)

	// Redis-backed guards stay disabled when redis is not configured.
	var (
		pinger      redis.Pinger
		limiter     redis.RateLimiter
		idempotency redis.IdempotencyStore
	)
	if redisClient != nil {
		pinger = redisClient
		limiter = redisClient
		idempotency = redisClient
	}

	checkoutPolicy := middleware.NewRateLimitPolicy(
		"checkout",
		cfg.Checkout.RateLimitWindow,
		cfg.Checkout.RateLimitMax,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, pinger, logg))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Session(sessions, cfg.Session, logg),
			middleware.BearerAuth(logg, nil),
		)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", controllers.ListCatalog(catalogService, logg))
			r.Get("/{serviceId}", controllers.GetCatalogItem(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart())
			r.Delete("/", controllers.ClearCart())
			r.Post("/items", controllers.AddCartItem(catalogService, logg))
			r.Patch("/items/{itemId}", controllers.UpdateCartItem(logg))
			r.Delete("/items/{itemId}", controllers.RemoveCartItem())
		})

		r.With(
			middleware.RateLimit(checkoutPolicy, limiter, logg),
			middleware.Idempotency(idempotency, cfg.Checkout.IdempotencyTTL, logg),
		).Post("/checkout", controllers.Checkout(checkoutCoordinator, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders())
			r.Post("/refresh", controllers.RefreshOrders(ordersService, logg))
			r.Get("/{orderId}", controllers.GetOrder(ordersService, logg))
			r.Get("/{orderId}/status", controllers.GetOrderStatus(ordersService, logg))
			r.Get("/{orderId}/tracking", controllers.GetOrderTracking(ordersService, logg))
			r.With(middleware.Idempotency(idempotency, cfg.Checkout.IdempotencyTTL, logg)).
				Post("/{orderId}/cancel", controllers.CancelOrder(ordersService, logg))
		})

		r.Post("/session/logout", controllers.Logout(sessions, cfg.Session, logg))
	})

	return r
}
