package status

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/sony/gobreaker/v2"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
)

func statusResponse(code int, contentType, body string) *http.Response {
	header := http.Header{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &http.Response{
		StatusCode: code,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestTranslateHTTPError_ReportedKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     int
		wantErr  error
		wantKind domain.Kind
	}{
		{name: "404 status resource missing", code: http.StatusNotFound, wantErr: domain.ErrNotFound, wantKind: domain.KindResourceNotFound},
		{name: "400 rejected query", code: http.StatusBadRequest, wantErr: domain.ErrValidation, wantKind: domain.KindInvalidArgument},
		{name: "422 rejected query", code: http.StatusUnprocessableEntity, wantErr: domain.ErrValidation, wantKind: domain.KindInvalidArgument},
		{name: "429 throttled", code: http.StatusTooManyRequests, wantErr: domain.ErrUnavailable, wantKind: domain.KindConnectionUnavailable},
		{name: "500 crashed", code: http.StatusInternalServerError, wantErr: domain.ErrUnavailable, wantKind: domain.KindConnectionUnavailable},
		{name: "502 behind a dead proxy", code: http.StatusBadGateway, wantErr: domain.ErrUnavailable, wantKind: domain.KindConnectionUnavailable},
		{name: "503 in maintenance", code: http.StatusServiceUnavailable, wantErr: domain.ErrUnavailable, wantKind: domain.KindConnectionUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(statusResponse(tt.code, "", ""))

			if !errors.Is(got, tt.wantErr) {
				t.Errorf("TranslateHTTPError() = %v, want errors.Is %v", got, tt.wantErr)
			}
			if kind := domain.Classify(got).Kind; kind != tt.wantKind {
				t.Errorf("Classify().Kind = %s, want %s", kind, tt.wantKind)
			}
		})
	}
}

func TestTranslateHTTPError_Detail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		code        int
		contentType string
		body        string
		want        string
	}{
		{
			name:        "problem detail names the outage",
			code:        http.StatusServiceUnavailable,
			contentType: "application/problem+json",
			body:        `{"title":"Service Unavailable","status":503,"detail":"status-api draining for deploy"}`,
			want:        "status-api draining for deploy: unavailable",
		},
		{
			name: "plain text body falls back to status text",
			code: http.StatusNotFound,
			body: "no such page",
			want: "Not Found: not found",
		},
		{
			name:        "malformed problem body falls back to status text",
			code:        http.StatusBadGateway,
			contentType: "application/problem+json",
			body:        `{"detail":`,
			want:        "Bad Gateway: unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(statusResponse(tt.code, tt.contentType, tt.body))
			if got.Error() != tt.want {
				t.Errorf("TranslateHTTPError() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslateHTTPError_FieldErrors(t *testing.T) {
	t.Parallel()

	body := `{
		"detail": "validation failed",
		"errors": [
			{"location": "body.component", "message": "is required"},
			{"location": "query.region", "message": "unknown region"}
		]
	}`

	got := TranslateHTTPError(statusResponse(http.StatusBadRequest, "application/problem+json", body))

	var verr *domain.ValidationError
	if !errors.As(got, &verr) {
		t.Fatalf("TranslateHTTPError() = %v, want *domain.ValidationError", got)
	}
	if verr.Fields["component"] != "is required" {
		t.Errorf("Fields[component] = %q, want %q", verr.Fields["component"], "is required")
	}
	if verr.Fields["query.region"] != "unknown region" {
		t.Errorf("Fields = %v, want only the body. prefix stripped", verr.Fields)
	}
	if kind := domain.Classify(got).Kind; kind != domain.KindInvalidArgument {
		t.Errorf("Classify().Kind = %s, want %s", kind, domain.KindInvalidArgument)
	}
}

func TestTranslateHTTPError_UnexpectedStatusIsUnknown(t *testing.T) {
	t.Parallel()

	got := TranslateHTTPError(&http.Response{StatusCode: http.StatusTeapot, Header: http.Header{}})

	if got.Error() != "unexpected status 418: I'm a teapot" {
		t.Errorf("TranslateHTTPError() = %q", got)
	}
	if kind := domain.Classify(got).Kind; kind != domain.KindUnknown {
		t.Errorf("Classify().Kind = %s, want %s", kind, domain.KindUnknown)
	}
}

func TestTranslateTransportError_WrapsUnavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cause error
	}{
		{name: "connection refused", cause: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connect: connection refused")}},
		{name: "connection dropped", cause: fmt.Errorf("Get %q: %w", "http://127.0.0.1:1/status", io.EOF)},
		{name: "breaker open", cause: gobreaker.ErrOpenState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := translateTransportError("status-api", tt.cause)

			if !errors.Is(got, domain.ErrUnavailable) || !errors.Is(got, tt.cause) {
				t.Errorf("error = %v, want ErrUnavailable with the cause in its chain", got)
			}
			if kind := domain.Classify(got).Kind; kind != domain.KindConnectionUnavailable {
				t.Errorf("Classify().Kind = %s, want %s", kind, domain.KindConnectionUnavailable)
			}

			msg := got.Error()
			if want := "status-api unreachable: unavailable: " + tt.cause.Error(); msg != want {
				t.Errorf("error = %q, want %q", msg, want)
			}
			if strings.Contains(msg, "\n") {
				t.Errorf("error = %q, want a single line for the report", msg)
			}
		})
	}
}
