package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.validate(),
		c.Catalogue.validate(),
		c.Database.validate(),
		c.Client.validate(),
		c.Telemetry.validate(),
	)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (c *CatalogueConfig) validate() error {
	var errs []error

	if strings.TrimSpace(c.FixtureFile) == "" {
		errs = append(errs, errors.New("catalogue.fixture_file must not be empty"))
	}
	if strings.ContainsAny(c.FixtureFile, `/\`) {
		errs = append(errs, fmt.Errorf("catalogue.fixture_file must be a bare file name, got %q", c.FixtureFile))
	}
	for i, v := range c.FixtureValues {
		if v < math.MinInt32 || v > math.MaxInt32 {
			errs = append(errs, fmt.Errorf("catalogue.fixture_values[%d] must fit in 32 bits, got %d", i, v))
		}
	}
	if strings.TrimSpace(c.MissingType) == "" {
		errs = append(errs, errors.New("catalogue.missing_type must not be empty"))
	}

	return errors.Join(errs...)
}

func (d *DatabaseConfig) validate() error {
	var errs []error

	if strings.TrimSpace(d.DSN) == "" {
		errs = append(errs, errors.New("database.dsn must not be empty"))
	}
	if d.PingTimeout <= 0 {
		errs = append(errs, errors.New("database.ping_timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (cl *ClientConfig) validate() error {
	var errs []error

	if cl.BaseURL == "" {
		errs = append(errs, errors.New("client.base_url must not be empty"))
	}
	if cl.Timeout <= 0 {
		errs = append(errs, errors.New("client.timeout must be positive"))
	}
	if cl.Retry.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts))
	}
	if cl.Retry.Multiplier <= 0 {
		errs = append(errs, fmt.Errorf("client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier))
	}
	if cl.CircuitBreaker.MaxFailures < 1 {
		errs = append(errs, fmt.Errorf("client.circuit_breaker.max_failures must be >= 1, got %d",
			cl.CircuitBreaker.MaxFailures))
	}
	if cl.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("client.rate_limit.requests_per_second must be >= 0, got %f",
			cl.RateLimit.RequestsPerSecond))
	}
	if cl.RateLimit.RequestsPerSecond > 0 && cl.RateLimit.BurstSize < 1 {
		errs = append(errs, fmt.Errorf("client.rate_limit.burst_size must be >= 1 when rate limiting, got %d",
			cl.RateLimit.BurstSize))
	}

	return errors.Join(errs...)
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}

	var errs []error

	switch t.Exporter {
	case "stdout", "otlp":
		// Valid exporters.
	default:
		errs = append(errs, fmt.Errorf("telemetry.exporter must be one of: stdout, otlp; got %q", t.Exporter))
	}

	if t.Exporter == "otlp" && t.Endpoint == "" {
		errs = append(errs, errors.New("telemetry.endpoint must not be empty when exporter is otlp"))
	}
	if strings.TrimSpace(t.ServiceName) == "" {
		errs = append(errs, errors.New("telemetry.service_name must not be empty when telemetry is enabled"))
	}

	return errors.Join(errs...)
}
