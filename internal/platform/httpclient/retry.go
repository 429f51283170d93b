package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
)

// jitterFraction is the maximum jitter as a fraction of the delay (±25%).
const jitterFraction = 0.25

// statusError reports a retryable status (429 or 5xx) from the downstream.
// It is what the breaker sees as the failure of that attempt.
type statusError struct {
	service string
	code    int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.code, e.service)
}

// doWithRetry makes up to maxAttempts attempts, each through the breaker.
// It gives up early on errors that cannot succeed on a later attempt, when the
// breaker has opened, and when the request body cannot be replayed.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	limit := c.retryCfg.maxAttempts
	if limit <= 0 {
		return nil, fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", limit)
	}
	if !replayable(req) {
		limit = 1
	}

	var lastErr error
	for n := 1; n <= limit; n++ {
		if n > 1 {
			if err := c.waitForRetry(ctx, req, n, lastErr); err != nil {
				return nil, err
			}
			if err := rewindBody(req); err != nil {
				return nil, err
			}
		}

		resp, err := c.attempt(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if n == limit || !c.canRetry(err) {
			// resp is only set for a retryable status; its body stays open.
			return resp, err
		}
		if resp != nil {
			drainResponseBody(resp)
		}
	}

	return nil, lastErr
}

// attempt sends req once. The breaker counts a transport error or a retryable
// status as a failure; a retryable status comes back with its response.
func (c *Client) attempt(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.breaker.Execute(func() (*http.Response, error) {
		if err := c.waitForRateLimit(ctx); err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if isRetryableStatus(resp.StatusCode) {
			return resp, &statusError{service: c.serviceName, code: resp.StatusCode}
		}
		return resp, nil
	})
}

// canRetry reports whether another attempt could change the outcome.
func (c *Client) canRetry(err error) bool {
	return isRetryable(err) && c.breaker.State() != gobreaker.StateOpen
}

// replayable reports whether req can be sent more than once.
func replayable(req *http.Request) bool {
	return req.Body == nil || req.Body == http.NoBody || req.GetBody != nil
}

// rewindBody hands the next attempt a fresh copy of the request body.
func rewindBody(req *http.Request) error {
	if req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}
	req.Body = body
	return nil
}

// drainResponseBody reads and discards the response body so the connection
// can be reused by the next attempt.
func drainResponseBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// waitForRetry logs the upcoming attempt n at WARN level and sleeps for its
// backoff delay, returning early when ctx is done.
func (c *Client) waitForRetry(ctx context.Context, req *http.Request, n int, lastErr error) error {
	delay := backoff(n-1, c.retryCfg)

	logging.FromContext(ctx).WarnContext(ctx, "retrying HTTP request",
		slog.String("operation", "httpclient.Do"),
		slog.String("trigger", triggerFrom(ctx)),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.serviceName),
		slog.String("breaker", c.breaker.State().String()),
		slog.Int("attempt", n),
		slog.Int("max_attempts", c.retryCfg.maxAttempts),
		slog.Duration("backoff", delay),
		slog.Any("error", lastErr),
	)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// triggerFrom returns the trigger name stored by WithTrigger, or "".
func triggerFrom(ctx context.Context) string {
	name, _ := ctx.Value(triggerKey{}).(string)
	return name
}

// backoff returns the delay before retry number retry (1 is the first retry):
// initialInterval grown by multiplier per retry, capped at maxInterval, with
// ±25% jitter.
func backoff(retry int, cfg retryConfig) time.Duration {
	delay := float64(cfg.initialInterval) * math.Pow(cfg.multiplier, float64(retry-1))
	delay = math.Min(delay, float64(cfg.maxInterval))

	delay += delay * jitterFraction * (2*rand.Float64() - 1) //nolint:gosec // jitter needs no cryptographic source

	return time.Duration(math.Max(delay, 0))
}

// isRetryable reports whether err may clear on a later attempt. Breaker
// rejections and context errors never do; transport errors and retryable
// statuses may.
func isRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	default:
		return true
	}
}

// isRetryableStatus reports whether a status code is worth another attempt:
// 429 Too Many Requests and every 5xx.
func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}
