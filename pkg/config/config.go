package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Session   SessionConfig
	Redis     RedisConfig
	Checkout  CheckoutConfig
	CORS      CORSConfig
	Telemetry TelemetryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Telemetry.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LAUNDRYPRO_APP_ENV" required:"true"`
	Port         string `envconfig:"LAUNDRYPRO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LAUNDRYPRO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LAUNDRYPRO_LOG_WARN_STACK" default:"false"`
	LoginURL     string `envconfig:"LAUNDRYPRO_LOGIN_URL" default:"/login"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the external laundry API that owns pricing and orders.
type BackendConfig struct {
	BaseURL      string        `envconfig:"LAUNDRYPRO_BACKEND_URL" required:"true"`
	Timeout      time.Duration `envconfig:"LAUNDRYPRO_BACKEND_TIMEOUT" default:"10s"`
	ServicesPath string        `envconfig:"LAUNDRYPRO_BACKEND_SERVICES_PATH" default:"/api/services"`
	OrdersPath   string        `envconfig:"LAUNDRYPRO_BACKEND_ORDERS_PATH" default:"/api/orders"`
}

func (b BackendConfig) validate() error {
	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", EnvBackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) url, got %q", EnvBackendURL, b.BaseURL)
	}
	if b.Timeout <= 0 {
		return fmt.Errorf("%s must be positive", EnvBackendTimeout)
	}
	return nil
}

type SessionConfig struct {
	CookieName    string        `envconfig:"LAUNDRYPRO_SESSION_COOKIE" default:"lp_session"`
	CookieSecure  bool          `envconfig:"LAUNDRYPRO_SESSION_COOKIE_SECURE" default:"false"`
	IdleTTL       time.Duration `envconfig:"LAUNDRYPRO_SESSION_IDLE_TTL" default:"12h"`
	SweepInterval time.Duration `envconfig:"LAUNDRYPRO_SESSION_SWEEP_INTERVAL" default:"10m"`
}

// RedisConfig is optional; without a URL or address the checkout rate limit and
// idempotency replay are disabled.
type RedisConfig struct {
	URL          string        `envconfig:"LAUNDRYPRO_REDIS_URL"`
	Address      string        `envconfig:"LAUNDRYPRO_REDIS_ADDR"`
	Password     string        `envconfig:"LAUNDRYPRO_REDIS_PASSWORD"`
	DB           int           `envconfig:"LAUNDRYPRO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LAUNDRYPRO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LAUNDRYPRO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LAUNDRYPRO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LAUNDRYPRO_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"LAUNDRYPRO_REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type CheckoutConfig struct {
	RateLimitWindow time.Duration `envconfig:"LAUNDRYPRO_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int           `envconfig:"LAUNDRYPRO_CHECKOUT_RATE_LIMIT_MAX" default:"5"`
	IdempotencyTTL  time.Duration `envconfig:"LAUNDRYPRO_CHECKOUT_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LAUNDRYPRO_CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
}

// TelemetryConfig selects where trace spans go. "none" keeps context
// propagation but records nothing.
type TelemetryConfig struct {
	Exporter     string `envconfig:"LAUNDRYPRO_TRACE_EXPORTER" default:"none"`
	OTLPEndpoint string `envconfig:"LAUNDRYPRO_OTLP_ENDPOINT" default:"localhost:4317"`
}

func (t TelemetryConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(t.Exporter)) {
	case TraceExporterNone, TraceExporterStdout, TraceExporterOTLP:
		return nil
	default:
		return fmt.Errorf("%s must be one of %s, %s, %s", EnvTraceExporter, TraceExporterNone, TraceExporterStdout, TraceExporterOTLP)
	}
}
