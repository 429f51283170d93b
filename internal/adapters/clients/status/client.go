package status

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/go-failure-demos/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

// StatusPath is the resource queried on the downstream service.
const StatusPath = "/status"

var _ ports.StatusClient = (*Client)(nil)

// statusBody is the JSON form of a status response. Plain-text responses are
// used verbatim.
type statusBody struct {
	Status string `json:"status"`
}

// Client implements [ports.StatusClient] on top of the platform HTTP client,
// so every call passes through its circuit breaker, rate limiter and retry
// policy.
type Client struct {
	http   *httpclient.Client
	logger *slog.Logger
}

// NewClient creates a status client. A nil logger discards logs.
func NewClient(client *httpclient.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{http: client, logger: logger}
}

// FetchStatus issues GET {base_url}/status and returns the reported status.
//
// Transport failures, an open circuit breaker, 429 and 5xx responses wrap
// domain.ErrUnavailable; 404 wraps domain.ErrNotFound.
func (c *Client) FetchStatus(ctx context.Context) (string, error) {
	resp, err := c.http.Get(ctx, StatusPath)
	if err != nil {
		// Exhausted retries on a retryable status return both values.
		if resp != nil {
			defer c.closeBody(ctx, resp)
			return "", TranslateHTTPError(resp)
		}
		c.logger.WarnContext(ctx, "status request failed",
			slog.String("operation", "status.FetchStatus"),
			slog.String("base_url", c.http.BaseURL()),
			slog.Any("error", err),
		)
		return "", translateTransportError(c.http.Name(), err)
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode != http.StatusOK {
		translateErr := TranslateHTTPError(resp)
		c.logger.WarnContext(ctx, "unexpected status",
			slog.String("operation", "status.FetchStatus"),
			slog.Int("status", resp.StatusCode),
			slog.Any("error", translateErr),
		)
		return "", translateErr
	}

	return decodeStatus(resp)
}

// Name identifies the client in the health registry.
func (c *Client) Name() string {
	return c.http.Name()
}

// HealthCheck reports availability from the circuit breaker state; no
// request is sent.
func (c *Client) HealthCheck(_ context.Context) error {
	state := c.http.CircuitBreakerState()
	switch state {
	case "closed":
		return nil
	case "half-open":
		return fmt.Errorf("%s: degraded (circuit breaker half-open)", c.Name())
	case "open":
		return fmt.Errorf("%s: failing (circuit breaker open)", c.Name())
	default:
		return fmt.Errorf("%s: unknown circuit breaker state %q", c.Name(), state)
	}
}

func decodeStatus(resp *http.Response) (string, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading status body: %w", err)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return strings.TrimSpace(string(body)), nil
	}

	var sb statusBody
	if err := json.Unmarshal(body, &sb); err != nil {
		return "", fmt.Errorf("decoding status body: %w", err)
	}
	return sb.Status, nil
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close response body",
			slog.Any("error", err),
		)
	}
}
