package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/angelmondragon/laundrypro-storefront/api/routes"
	"github.com/angelmondragon/laundrypro-storefront/internal/backend"
	"github.com/angelmondragon/laundrypro-storefront/internal/catalog"
	"github.com/angelmondragon/laundrypro-storefront/internal/checkout"
	"github.com/angelmondragon/laundrypro-storefront/internal/orders"
	"github.com/angelmondragon/laundrypro-storefront/internal/session"
	"github.com/angelmondragon/laundrypro-storefront/pkg/config"
	"github.com/angelmondragon/laundrypro-storefront/pkg/instance"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
	"github.com/angelmondragon/laundrypro-storefront/pkg/metrics"
	"github.com/angelmondragon/laundrypro-storefront/pkg/redis"
	"github.com/angelmondragon/laundrypro-storefront/pkg/telemetry"
)

const (
	serviceName     = "laundrypro-storefront"
	shutdownTimeout = 15 * time.Second
)

func main() {
	logg := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       cfg.App.LogLevel,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "storefront stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, redisClient.Close())
		}()
	} else {
		logg.Warn(ctx, "redis not configured, checkout rate limiting and idempotency replay disabled")
	}

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.Telemetry, nil)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = multierr.Append(err, shutdownTracing(flushCtx))
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	backendClient, err := backend.New(
		cfg.Backend,
		telemetry.NewTracedHTTPClient(http.DefaultTransport, cfg.Backend.Timeout),
		logg,
		metrics.NewBackendMetrics(registry),
	)
	if err != nil {
		return err
	}
	catalogService, err := catalog.New(backendClient)
	if err != nil {
		return err
	}
	ordersService, err := orders.NewService(backendClient, logg)
	if err != nil {
		return err
	}
	coordinator, err := checkout.NewCoordinator(backendClient, logg, metrics.NewCheckoutMetrics(registry))
	if err != nil {
		return err
	}

	sessions := session.NewManager(cfg.Session.IdleTTL)
	go sessions.Run(ctx, cfg.Session.SweepInterval, func(removed int) {
		logg.Info(logg.WithField(ctx, "removed", removed), "expired sessions swept")
	})

	addr := ":" + cfg.App.Port
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	serverCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
		"backend":  cfg.Backend.BaseURL,
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			redisClient,
			sessions,
			catalogService,
			coordinator,
			ordersService,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logg.Info(serverCtx, "starting storefront server")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logg.Info(serverCtx, "shutting down storefront server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
