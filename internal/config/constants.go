package config

import "time"

const (
	envPort              = "PORT"
	envPollInterval      = "POLL_INTERVAL"
	envLeagues           = "LEAGUES"
	envTimezone          = "TIMEZONE"
	envProviderCacheTTL  = "PROVIDER_CACHE_TTL"
	envHTTPTimeout       = "HTTP_TIMEOUT"
	envRetryAttempts     = "PROVIDER_RETRY_ATTEMPTS"
	envOlympicResultsURL = "OLYMPIC_RESULTS_URL"
	envCORSOrigins       = "CORS_ORIGINS"
	envMetricsPort       = "METRICS_PORT"
	envMetricsOn         = "METRICS_ENABLED"
	envOtelEndpoint      = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService       = "OTEL_SERVICE_NAME"
	envOtelInsecure      = "OTEL_EXPORTER_OTLP_INSECURE"
	envRedisAddr         = "REDIS_ADDR"
	envRedisPassword     = "REDIS_PASSWORD"
	envRedisDB           = "REDIS_DB"
	envRedisStreamPrefix = "REDIS_STREAM_PREFIX"

	defaultPort         = "4000"
	defaultPollInterval = 30 * Duration(time.Second)
	// Ticks faster than this hammer the upstream APIs without fresher data.
	minPollInterval = 10 * Duration(time.Second)

	defaultLeagues           = "all"
	defaultTimezone          = "America/New_York"
	defaultCacheTTL          = 20 * Duration(time.Second)
	minCacheTTL              = 15 * Duration(time.Second)
	defaultHTTPTimeout       = 10 * Duration(time.Second)
	defaultRetryAttempts     = 2
	defaultOlympicResultsURL = "https://www.olympics.com/en/milano-cortina-2026/results/ice-hockey"
	defaultCORSOrigins       = "*"
	defaultMetricsPort       = "9090"
	defaultStreamPrefix      = "scores.updates"
)
