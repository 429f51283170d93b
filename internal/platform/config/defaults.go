package config

const (
	defaultRetryMaxAttempts = 3
	defaultRetryMultiplier  = 2.0

	defaultCircuitBreakerMaxFailures = 3
	defaultCircuitBreakerHalfOpen    = 1

	defaultRateLimitBurst = 1
)

// defaults returns the default configuration values.
// These are loaded first and can be overridden by base.yaml, profile YAML, and env vars.
//
// The status client points at a port nothing listens on and the database DSN
// names a file under a directory that does not exist: both demonstrations are
// meant to fail.
func defaults() map[string]any {
	return map[string]any{
		"log.level":  "warn",
		"log.format": "text",

		"catalogue.work_dir":       "",
		"catalogue.fixture_file":   "testfile.dat",
		"catalogue.fixture_values": []any{1, 2, 3},
		"catalogue.missing_type":   "com.example.NonExistentClass",

		"database.dsn":          "file:missing-dir/catalogue.db?mode=ro",
		"database.ping_timeout": "2s",

		"client.base_url":                        "http://127.0.0.1:1",
		"client.timeout":                         "2s",
		"client.retry.max_attempts":              defaultRetryMaxAttempts,
		"client.retry.initial_interval":          "50ms",
		"client.retry.max_interval":              "200ms",
		"client.retry.multiplier":                defaultRetryMultiplier,
		"client.circuit_breaker.max_failures":    defaultCircuitBreakerMaxFailures,
		"client.circuit_breaker.timeout":         "30s",
		"client.circuit_breaker.half_open_limit": defaultCircuitBreakerHalfOpen,
		"client.rate_limit.requests_per_second":  0,
		"client.rate_limit.burst_size":           defaultRateLimitBurst,

		"telemetry.enabled":      false,
		"telemetry.exporter":     "stdout",
		"telemetry.endpoint":     "",
		"telemetry.service_name": "failure-demos",
	}
}
