package health_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/go-failure-demos/internal/platform/health"
	"github.com/jsamuelsen11/go-failure-demos/mocks"
)

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	r := health.New()
	results := r.CheckAll(context.Background())

	if results == nil {
		t.Fatal("expected non-nil map, got nil")
	}
	if len(results) != 0 {
		t.Errorf("expected empty map, got %d entries", len(results))
	}
}

func TestCheckAll_AllHealthy(t *testing.T) {
	t.Parallel()

	checkerA := mocks.NewMockHealthChecker(t)
	checkerA.EXPECT().Name().Return("database")
	checkerA.EXPECT().HealthCheck(mock.Anything).Return(nil)

	checkerB := mocks.NewMockHealthChecker(t)
	checkerB.EXPECT().Name().Return("work-dir")
	checkerB.EXPECT().HealthCheck(mock.Anything).Return(nil)

	r := health.New()
	r.Register(checkerA)
	r.Register(checkerB)

	results := r.CheckAll(context.Background())

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results["database"] != nil {
		t.Errorf("db check = %v, want nil", results["database"])
	}
	if results["work-dir"] != nil {
		t.Errorf("cache check = %v, want nil", results["work-dir"])
	}
}

func TestCheckAll_MixedHealth(t *testing.T) {
	t.Parallel()

	healthy := mocks.NewMockHealthChecker(t)
	healthy.EXPECT().Name().Return("database")
	healthy.EXPECT().HealthCheck(mock.Anything).Return(nil)

	unhealthyErr := errors.New("connection refused")
	unhealthy := mocks.NewMockHealthChecker(t)
	unhealthy.EXPECT().Name().Return("status-api")
	unhealthy.EXPECT().HealthCheck(mock.Anything).Return(unhealthyErr)

	r := health.New()
	r.Register(healthy)
	r.Register(unhealthy)

	results := r.CheckAll(context.Background())

	if results["database"] != nil {
		t.Errorf("db check = %v, want nil", results["database"])
	}
	if results["status-api"] == nil {
		t.Fatal("status-api check = nil, want error")
	}
	if results["status-api"].Error() != "connection refused" {
		t.Errorf("status-api check = %q, want %q", results["status-api"].Error(), "connection refused")
	}
}

func TestCheckAll_ContextPropagated(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := mocks.NewMockHealthChecker(t)
	checker.EXPECT().Name().Return("status-api")
	checker.EXPECT().HealthCheck(mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() != nil
	})).Return(context.Canceled)

	r := health.New()
	r.Register(checker)

	results := r.CheckAll(ctx)

	if !errors.Is(results["status-api"], context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results["status-api"])
	}
}

func TestCheckAll_DuplicateNames_LastWriteWins(t *testing.T) {
	t.Parallel()

	first := mocks.NewMockHealthChecker(t)
	first.EXPECT().Name().Return("database")
	first.EXPECT().HealthCheck(mock.Anything).Return(nil)

	secondErr := errors.New("second failure")
	second := mocks.NewMockHealthChecker(t)
	second.EXPECT().Name().Return("database")
	second.EXPECT().HealthCheck(mock.Anything).Return(secondErr)

	r := health.New()
	r.Register(first)
	r.Register(second)

	results := r.CheckAll(context.Background())

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	got, ok := results["database"]
	if !ok {
		t.Fatal(`expected result for key "database", but it was missing`)
	}
	if !errors.Is(got, secondErr) {
		t.Errorf("db check = %v, want %v (from last registered checker)", got, secondErr)
	}
}

func TestCheckAll_ConcurrentSafety(t *testing.T) {
	t.Parallel()

	r := health.New()

	var wg sync.WaitGroup
	const goroutines = 50

	// Half the goroutines register checkers, half call CheckAll.
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		if i%2 == 0 {
			go func() {
				defer wg.Done()
				c := mocks.NewMockHealthChecker(t)
				c.EXPECT().Name().Return("checker").Maybe()
				c.EXPECT().HealthCheck(mock.Anything).Return(nil).Maybe()
				r.Register(c)
			}()
		} else {
			go func() {
				defer wg.Done()
				r.CheckAll(context.Background())
			}()
		}
	}

	wg.Wait()
}

func TestPreflight_AllHealthy(t *testing.T) {
	t.Parallel()

	checker := mocks.NewMockHealthChecker(t)
	checker.EXPECT().Name().Return("work-dir")
	checker.EXPECT().HealthCheck(mock.Anything).Return(nil)

	r := health.New()
	r.Register(checker)

	if err := r.Preflight(context.Background()); err != nil {
		t.Errorf("Preflight() = %v, want nil", err)
	}
}

func TestPreflight_JoinsFailuresInNameOrder(t *testing.T) {
	t.Parallel()

	errStatus := errors.New("failing (circuit breaker open)")
	errDir := errors.New("not a directory")

	status := mocks.NewMockHealthChecker(t)
	status.EXPECT().Name().Return("status-api")
	status.EXPECT().HealthCheck(mock.Anything).Return(errStatus)

	dir := mocks.NewMockHealthChecker(t)
	dir.EXPECT().Name().Return("work-dir")
	dir.EXPECT().HealthCheck(mock.Anything).Return(errDir)

	r := health.New()
	r.Register(dir)
	r.Register(status)

	err := r.Preflight(context.Background())
	if err == nil {
		t.Fatal("Preflight() = nil, want joined error")
	}
	if !errors.Is(err, errStatus) || !errors.Is(err, errDir) {
		t.Errorf("Preflight() = %v, want both check errors in the chain", err)
	}

	msg := err.Error()
	if strings.Index(msg, "status-api") > strings.Index(msg, "work-dir") {
		t.Errorf("Preflight() = %q, want failures ordered by name", msg)
	}
}
