package config

const (
	EnvPrefix = "LAUNDRYPRO"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv         = "LAUNDRYPRO_APP_ENV"
	EnvPort           = "LAUNDRYPRO_APP_PORT"
	EnvBackendURL     = "LAUNDRYPRO_BACKEND_URL"
	EnvBackendTimeout = "LAUNDRYPRO_BACKEND_TIMEOUT"
	EnvRedisURL       = "LAUNDRYPRO_REDIS_URL"
	EnvCORSOrigins    = "LAUNDRYPRO_CORS_ALLOWED_ORIGINS"
	EnvTraceExporter  = "LAUNDRYPRO_TRACE_EXPORTER"

	TraceExporterNone   = "none"
	TraceExporterStdout = "stdout"
	TraceExporterOTLP   = "otlp"
)
