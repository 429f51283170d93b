package httpclient_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sony/gobreaker/v2"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/go-failure-demos/internal/platform/config"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/telemetry"
)

// statusConfig matches configs/base.yaml (three attempts, breaker trips at
// three failures) with short waits.
func statusConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newStatusAPI serves GET /status with handler and counts the requests.
func newStatusAPI(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	r := chi.NewRouter()
	r.HandleFunc("/status", func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		handler(w, req)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, &hits
}

// newRefusingListener accepts connections and closes them at once, counting
// how many it saw.
func newRefusingListener(t *testing.T) (string, *atomic.Int32) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var accepted atomic.Int32
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			accepted.Add(1)
			_ = conn.Close()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		<-done
	})

	return "http://" + ln.Addr().String(), &accepted
}

func TestGet_StatusUp(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/v1/status", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("UP"))
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	client := httpclient.New(statusConfig(srv.URL+"/v1"), "status-api", nil, testLogger())

	resp, err := client.Get(context.Background(), "/status")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "UP" {
		t.Errorf("Get() = %d %q, want 200 \"UP\"", resp.StatusCode, body)
	}
	if got := client.BaseURL(); got != srv.URL+"/v1" {
		t.Errorf("BaseURL() = %q, want %q", got, srv.URL+"/v1")
	}
}

func TestGet_StatusServiceFlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		failStatus   int
		failCount    int32
		wantStatus   int
		wantAttempts int32
	}{
		{name: "two 503s then UP", failStatus: http.StatusServiceUnavailable, failCount: 2, wantStatus: http.StatusOK, wantAttempts: 3},
		{name: "one 429 then UP", failStatus: http.StatusTooManyRequests, failCount: 1, wantStatus: http.StatusOK, wantAttempts: 2},
		{name: "404 is not retried", failStatus: http.StatusNotFound, failCount: 3, wantStatus: http.StatusNotFound, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv, hits := newStatusAPI(t, func(w http.ResponseWriter, _ *http.Request) {
				if calls.Add(1) <= tt.failCount {
					w.WriteHeader(tt.failStatus)
					return
				}
				_, _ = w.Write([]byte("UP"))
			})

			client := httpclient.New(statusConfig(srv.URL), "status-api", nil, testLogger())

			resp, err := client.Get(context.Background(), "/status")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if got := hits.Load(); got != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", got, tt.wantAttempts)
			}
			if got := client.CircuitBreakerState(); got != "closed" {
				t.Errorf("CircuitBreakerState() = %q, want \"closed\"", got)
			}
		})
	}
}

func TestGet_MaintenanceKeepsLastResponse(t *testing.T) {
	t.Parallel()

	srv, hits := newStatusAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	})

	cfg := statusConfig(srv.URL)
	cfg.CircuitBreaker.MaxFailures = 10
	client := httpclient.New(cfg, "status-api", nil, testLogger())

	resp, err := client.Get(context.Background(), "/status")
	if err == nil {
		t.Fatal("Get() error = nil, want error after the last attempt")
	}
	if resp == nil {
		t.Fatal("Get() resp = nil, want the last 503 with its body")
	}
	defer func() { _ = resp.Body.Close() }()

	if got := hits.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "maintenance" {
		t.Errorf("body = %q, want %q", body, "maintenance")
	}
	if !strings.Contains(err.Error(), "HTTP 503 from status-api") {
		t.Errorf("error = %q, want it to name the status and service", err)
	}
}

func TestGet_UnreachableServiceTripsBreaker(t *testing.T) {
	t.Parallel()

	baseURL, accepted := newRefusingListener(t)
	client := httpclient.New(statusConfig(baseURL), "status-api", nil, testLogger())

	resp, err := client.Get(context.Background(), "/status")
	if resp != nil {
		_ = resp.Body.Close()
		t.Fatal("Get() returned a response from a service that drops connections")
	}
	if err == nil {
		t.Fatal("Get() error = nil, want transport error")
	}
	if errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("first Get() error = %v, want the transport error of the last attempt", err)
	}
	if got := accepted.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
	if got := client.CircuitBreakerState(); got != "open" {
		t.Fatalf("CircuitBreakerState() = %q, want \"open\"", got)
	}

	resp, err = client.Get(context.Background(), "/status")
	if resp != nil {
		_ = resp.Body.Close()
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("second Get() error = %v, want gobreaker.ErrOpenState", err)
	}
	if got := accepted.Load(); got != 3 {
		t.Errorf("attempts after rejection = %d, want still 3", got)
	}
}

func TestGet_BreakerRecoversAfterTimeout(t *testing.T) {
	t.Parallel()

	var down atomic.Bool
	down.Store(true)
	srv, _ := newStatusAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("UP"))
	})

	cfg := statusConfig(srv.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = 100 * time.Millisecond
	client := httpclient.New(cfg, "status-api", nil, testLogger())

	resp, _ := client.Get(context.Background(), "/status")
	if resp != nil {
		_ = resp.Body.Close()
	}
	if got := client.CircuitBreakerState(); got != "open" {
		t.Fatalf("CircuitBreakerState() = %q, want \"open\"", got)
	}

	time.Sleep(150 * time.Millisecond)
	down.Store(false)

	resp, err := client.Get(context.Background(), "/status")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil once the service is back", err)
	}
	_ = resp.Body.Close()

	if got := client.CircuitBreakerState(); got != "closed" {
		t.Errorf("CircuitBreakerState() = %q, want \"closed\"", got)
	}
}

func TestDo_ReplaysRewindableBody(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		bodies []string
	)
	srv, _ := newStatusAPI(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		bodies = append(bodies, string(b))
		n := len(bodies)
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	client := httpclient.New(statusConfig(srv.URL), "status-api", nil, testLogger())

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, srv.URL+"/status",
		strings.NewReader(`{"status":"DEGRADED"}`))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}

	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	_ = resp.Body.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 2 {
		t.Fatalf("attempts = %d, want 2", len(bodies))
	}
	for i, b := range bodies {
		if b != `{"status":"DEGRADED"}` {
			t.Errorf("attempt %d body = %q", i+1, b)
		}
	}
}

func TestDo_RunHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ctx         context.Context
		wantRunID   string
		wantTrigger string
	}{
		{
			name: "run and trigger on context",
			ctx: httpclient.WithTrigger(
				httpclient.WithRunID(context.Background(), "run-123"),
				"call an unreachable status service"),
			wantRunID:   "run-123",
			wantTrigger: "call an unreachable status service",
		},
		{
			name: "bare context",
			ctx:  context.Background(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotRunID, gotTrigger string
			srv, _ := newStatusAPI(t, func(w http.ResponseWriter, r *http.Request) {
				gotRunID = r.Header.Get(httpclient.HeaderRunID)
				gotTrigger = r.Header.Get(httpclient.HeaderTrigger)
				_, _ = w.Write([]byte("UP"))
			})

			client := httpclient.New(statusConfig(srv.URL), "status-api", nil, testLogger())

			resp, err := client.Get(tt.ctx, "/status")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			_ = resp.Body.Close()

			if gotRunID != tt.wantRunID {
				t.Errorf("%s = %q, want %q", httpclient.HeaderRunID, gotRunID, tt.wantRunID)
			}
			if gotTrigger != tt.wantTrigger {
				t.Errorf("%s = %q, want %q", httpclient.HeaderTrigger, gotTrigger, tt.wantTrigger)
			}
		})
	}
}

func TestGet_CanceledRun(t *testing.T) {
	t.Parallel()

	srv, hits := newStatusAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	client := httpclient.New(statusConfig(srv.URL), "status-api", nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := client.Get(ctx, "/status")
	if resp != nil {
		_ = resp.Body.Close()
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Get() error = %v, want context.Canceled", err)
	}
	if got := hits.Load(); got != 0 {
		t.Errorf("attempts = %d, want 0 for a canceled run", got)
	}
}

func TestClient_HealthCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		trip    bool
		wait    time.Duration
		wantErr string
	}{
		{name: "closed", trip: false},
		{name: "open", trip: true, wantErr: "status-api: failing"},
		{name: "half-open", trip: true, wait: 150 * time.Millisecond, wantErr: "status-api: degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newStatusAPI(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			})

			cfg := statusConfig(srv.URL)
			cfg.Retry.MaxAttempts = 1
			cfg.CircuitBreaker.MaxFailures = 1
			cfg.CircuitBreaker.Timeout = 100 * time.Millisecond
			client := httpclient.New(cfg, "status-api", nil, testLogger())

			if client.Name() != "status-api" {
				t.Errorf("Name() = %q, want %q", client.Name(), "status-api")
			}

			if tt.trip {
				resp, _ := client.Get(context.Background(), "/status")
				if resp != nil {
					_ = resp.Body.Close()
				}
			}
			time.Sleep(tt.wait)

			err := client.HealthCheck(context.Background())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("HealthCheck() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("HealthCheck() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGet_RecordsRejectedCalls(t *testing.T) {
	t.Parallel()

	baseURL, _ := newRefusingListener(t)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := telemetry.NewMetrics(mp, "failure-demos")
	if err != nil {
		t.Fatalf("NewMetrics error = %v", err)
	}

	client := httpclient.New(statusConfig(baseURL), "status-api", metrics, nil)

	for range 2 {
		resp, _ := client.Get(context.Background(), "/status")
		if resp != nil {
			_ = resp.Body.Close()
		}
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect error = %v", err)
	}

	results := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.client.request.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("http.client.request.total data = %T, want Sum[int64]", m.Data)
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(telemetry.AttrResult)
				results[v.AsString()] += dp.Value
			}
		}
	}

	// One call per Get: the first fails on the wire, the second is rejected.
	if results["error"] != 1 || results["circuit_open"] != 1 {
		t.Errorf("request totals by result = %v, want error=1 circuit_open=1", results)
	}
}
