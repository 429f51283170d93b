// Package status implements the client for the downstream status service.
// It translates transport failures and HTTP error responses into domain
// errors so the runner can classify them.
package status

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
)

// maxBodySize limits how much of a response body is read.
const maxBodySize = 1 << 20 // 1 MB

// problemDetail is the RFC 7807 body a status service may send with an error.
type problemDetail struct {
	Detail string        `json:"detail"`
	Errors []errorDetail `json:"errors"`
}

type errorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// TranslateHTTPError maps an HTTP error response to a domain error. An
// application/problem+json body supplies the detail text, and field-level
// errors on 400/422 become a *domain.ValidationError.
func TranslateHTTPError(resp *http.Response) error {
	pd := parseProblemDetail(resp)

	detail := pd.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", detail, domain.ErrNotFound)

	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		if len(pd.Errors) > 0 {
			return toValidationError(pd.Errors)
		}
		return fmt.Errorf("%s: %w", detail, domain.ErrValidation)

	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", detail, domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, detail)
	}
}

// translateTransportError wraps a failure that produced no HTTP response
// (connection refused, timeout, open circuit breaker).
func translateTransportError(service string, err error) error {
	return fmt.Errorf("%s unreachable: %w: %w", service, domain.ErrUnavailable, err)
}

func parseProblemDetail(resp *http.Response) problemDetail {
	if resp.Body == nil {
		return problemDetail{}
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/problem+json") {
		return problemDetail{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return problemDetail{}
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return problemDetail{}
	}
	return pd
}

// toValidationError strips the "body." prefix from problem locations to
// produce field names.
func toValidationError(details []errorDetail) *domain.ValidationError {
	fields := make(map[string]string, len(details))
	for _, d := range details {
		field := strings.TrimPrefix(d.Location, "body.")
		fields[field] = d.Message
	}
	return &domain.ValidationError{Fields: fields}
}
