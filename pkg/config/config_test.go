package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "prod" {
		t.Fatalf("expected App.Env to be prod, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "8081" {
		t.Fatalf("unexpected port %q", cfg.App.Port)
	}
	if cfg.Backend.BaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected backend url %q", cfg.Backend.BaseURL)
	}
	if got := cfg.Backend.Timeout; got != 10*time.Second {
		t.Fatalf("expected default backend timeout 10s, got %v", got)
	}
	if cfg.Backend.OrdersPath != "/api/orders" {
		t.Fatalf("unexpected orders path %q", cfg.Backend.OrdersPath)
	}
	if cfg.Session.CookieName != "lp_session" {
		t.Fatalf("unexpected cookie name %q", cfg.Session.CookieName)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without url/address")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_OverridesAndLists(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvBackendTimeout, "3s")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvCORSOrigins, "https://a.example,https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Backend.Timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", cfg.Backend.Timeout)
	}
	if !cfg.Redis.Enabled() {
		t.Fatalf("redis should be enabled when url is set")
	}
	if len(cfg.CORS.AllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CORS.AllowedOrigins)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_RejectsNonHTTPBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvBackendURL, "ftp://example.com")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http backend url to be rejected")
	}
}

func TestLoad_TraceExporter(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Telemetry.Exporter != TraceExporterNone {
		t.Fatalf("expected default exporter none, got %q", cfg.Telemetry.Exporter)
	}

	t.Setenv(EnvTraceExporter, "zipkin")
	if _, err := Load(); err == nil {
		t.Fatal("expected unknown trace exporter to be rejected")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "prod")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvBackendURL, "http://localhost:5000")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
	if prodConfig.IsDev() {
		t.Fatalf("expected IsDev false for %q", prodConfig.Env)
	}
}
