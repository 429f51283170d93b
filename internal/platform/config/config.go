// Package config provides configuration loading and validation for the
// demonstration program. Configuration is layered:
// defaults -> base.yaml -> {profile}.yaml -> env vars.
// Every layer past the defaults is optional, so the program runs with no
// files and no environment at all.
package config

import "time"

// Config holds all configuration for the program.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Catalogue CatalogueConfig `koanf:"catalogue"`
	Database  DatabaseConfig  `koanf:"database"`
	Client    ClientConfig    `koanf:"client"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// CatalogueConfig holds the inputs of the file and type demonstrations.
type CatalogueConfig struct {
	// WorkDir is where the file demonstrations look for files. Empty means a
	// fresh temporary directory, removed when the run ends.
	WorkDir       string `koanf:"work_dir"`
	FixtureFile   string `koanf:"fixture_file"`
	FixtureValues []int  `koanf:"fixture_values"`
	MissingType   string `koanf:"missing_type"`
}

// Fixture returns FixtureValues as the int32s written to the fixture file.
// Validate rejects values outside the int32 range.
func (c *CatalogueConfig) Fixture() []int32 {
	out := make([]int32, len(c.FixtureValues))
	for i, v := range c.FixtureValues {
		out[i] = int32(v)
	}
	return out
}

// DatabaseConfig holds the connection the database demonstration attempts.
type DatabaseConfig struct {
	DSN         string        `koanf:"dsn"`
	PingTimeout time.Duration `koanf:"ping_timeout"`
}

// ClientConfig holds downstream HTTP client settings for the status service.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig holds outbound rate limiting settings. A zero
// RequestsPerSecond disables the limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}
