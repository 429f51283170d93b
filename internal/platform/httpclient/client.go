// Package httpclient provides an instrumented HTTP client with circuit breaker,
// retry with exponential backoff, OpenTelemetry tracing, and header injection
// for outbound requests.
//
// Requests pass through these stages in order:
//
//	Header Injection → OTEL Span → Retry → (Circuit Breaker → Rate Limiter → HTTP)
//
// The stages in parentheses run once per attempt, so every failed attempt
// counts towards tripping the breaker and retrying stops once it is open.
//
// Construction:
//
//	client := httpclient.New(&cfg.Client, "status-api", metrics, logger)
//
// Executing requests:
//
//	resp, err := client.Get(ctx, "/status")
//
// Run metadata carried on the context is copied into outbound headers:
//
//	ctx = httpclient.WithRunID(ctx, runID)
//	ctx = httpclient.WithTrigger(ctx, "call an unreachable status service")
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/go-failure-demos/internal/platform/config"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/telemetry"
)

// Outbound header names.
const (
	HeaderRunID   = "X-Run-ID"
	HeaderTrigger = "X-Demo-Trigger"
)

type (
	runIDKey   struct{}
	triggerKey struct{}
)

// WithRunID returns a new context carrying the identifier of the current
// demonstration run.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// WithTrigger returns a new context carrying the name of the trigger that is
// making the outbound call.
func WithTrigger(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, triggerKey{}, name)
}

// retryConfig holds the retry policy values extracted from config.RetryConfig
// so the config package does not leak through the API.
type retryConfig struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// Client is an instrumented HTTP client with circuit breaker, rate limiting,
// retry, header injection, and OpenTelemetry tracing for outbound requests.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	breaker     *gobreaker.CircuitBreaker[*http.Response]
	limiter     *rate.Limiter // nil when rate limiting is disabled
	retryCfg    retryConfig
	metrics     *telemetry.Metrics
	logger      *slog.Logger
}

// New creates an instrumented HTTP client for the downstream identified by
// serviceName (e.g., "status-api"). If metrics is nil, metric recording is
// skipped. If logger is nil, breaker transitions are not logged.
func New(cfg *config.ClientConfig, serviceName string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: toUint32(cfg.CircuitBreaker.HalfOpenLimit),
		Timeout:     cfg.CircuitBreaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return int(counts.ConsecutiveFailures) >= cfg.CircuitBreaker.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		serviceName: serviceName,
		breaker:     cb,
		limiter:     limiter,
		retryCfg: retryConfig{
			maxAttempts:     cfg.Retry.MaxAttempts,
			initialInterval: cfg.Retry.InitialInterval,
			maxInterval:     cfg.Retry.MaxInterval,
			multiplier:      cfg.Retry.Multiplier,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Get issues a GET request for path resolved against the base URL.
// The response follows the same contract as Do.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	target, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("building %s url: %w", c.serviceName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", c.serviceName, err)
	}

	return c.Do(ctx, req)
}

// Do executes an HTTP request through the full pipeline.
//
// When the request succeeds (non-retryable status), resp is non-nil with an
// open body that the caller must close. When the last attempt ends in a
// retryable status, both resp (with open body) and err are non-nil; the caller
// should close resp.Body. When the circuit breaker rejects or a network error
// occurs, resp is nil.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	method := req.Method

	c.injectHeaders(ctx, req)

	spanCtx, span := c.startSpan(ctx, req)
	defer span.End()

	resp, err := c.doWithRetry(spanCtx, req.WithContext(spanCtx))
	c.finishSpan(span, resp, err)

	c.recordMetrics(ctx, method, start, resp, err)

	return resp, err
}

// BaseURL returns the base URL configured for this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Name returns the downstream service identifier. With HealthCheck it lets
// Client satisfy ports.HealthChecker.
func (c *Client) Name() string {
	return c.serviceName
}

// CircuitBreakerState returns the breaker state as reported by gobreaker:
// "closed", "half-open" or "open".
func (c *Client) CircuitBreakerState() string {
	return c.breaker.State().String()
}

// HealthCheck reports downstream availability from the circuit breaker state
// without making a network call. A closed breaker is healthy; half-open and
// open breakers produce descriptive errors.
func (c *Client) HealthCheck(_ context.Context) error {
	state := c.breaker.State()
	switch state {
	case gobreaker.StateClosed:
		return nil
	case gobreaker.StateHalfOpen:
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.serviceName)
	case gobreaker.StateOpen:
		return fmt.Errorf("%s: failing (circuit breaker open)", c.serviceName)
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %v", c.serviceName, state)
	}
}

func (c *Client) waitForRateLimit(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *Client) injectHeaders(ctx context.Context, req *http.Request) {
	if id, ok := ctx.Value(runIDKey{}).(string); ok && id != "" {
		req.Header.Set(HeaderRunID, id)
	}
	if name, ok := ctx.Value(triggerKey{}).(string); ok && name != "" {
		req.Header.Set(HeaderTrigger, name)
	}
}

// startSpan creates an OTEL client span for the outbound request and injects
// W3C trace context into the request headers.
func (c *Client) startSpan(ctx context.Context, req *http.Request) (context.Context, trace.Span) {
	tracer := otel.GetTracerProvider().Tracer("httpclient")

	spanName := fmt.Sprintf("HTTP %s %s", req.Method, c.serviceName)
	ctx, span := tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.serviceName),
		),
	)

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return ctx, span
}

func (c *Client) finishSpan(span trace.Span, resp *http.Response, err error) {
	if resp != nil {
		span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// recordMetrics runs once per Do call, after the last attempt, so that
// rejected calls are counted.
func (c *Client) recordMetrics(ctx context.Context, method string, start time.Time, resp *http.Response, err error) {
	if c.metrics == nil {
		return
	}

	duration := time.Since(start).Seconds()

	statusCode := 0
	result := "error"
	if resp != nil {
		statusCode = resp.StatusCode
		if statusCode < http.StatusBadRequest {
			result = "success"
		}
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		result = "circuit_open"
	}

	attrs := metric.WithAttributes(
		telemetry.AttrHTTPMethod.String(method),
		telemetry.AttrHTTPStatus.Int(statusCode),
		telemetry.AttrPeerService.String(c.serviceName),
		telemetry.AttrResult.String(result),
	)

	c.metrics.ClientRequestDuration.Record(ctx, duration, attrs)
	c.metrics.ClientRequestTotal.Add(ctx, 1, attrs)
}

// toUint32 clamps v into the uint32 range.
func toUint32(v int) uint32 {
	if v <= 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
