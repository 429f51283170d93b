// Package health keeps the set of collaborator health checks that the entry
// point runs as a preflight before the catalogue. A failing check is reported
// as a warning; it never stops the run, since several triggers depend on
// collaborators being unavailable.
package health

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// Registry is a thread-safe implementation of [ports.HealthRegistry].
type Registry struct {
	mu       sync.RWMutex
	checkers []ports.HealthChecker
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a health checker. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkers = append(r.checkers, checker)
}

// CheckAll runs every registered check and returns the results keyed by
// checker name. Nil values indicate healthy components. Checks run outside
// the lock on a copy of the checker slice.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	results := make(map[string]error, len(checkers))
	for _, c := range checkers {
		results[c.Name()] = c.HealthCheck(ctx)
	}
	return results
}

// Preflight runs every check and joins the failures, ordered by checker name,
// into a single error. It returns nil when all checks pass.
func (r *Registry) Preflight(ctx context.Context) error {
	results := r.CheckAll(ctx)

	names := make([]string, 0, len(results))
	for name, err := range results {
		if err != nil {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	errs := make([]error, 0, len(names))
	for _, name := range names {
		errs = append(errs, fmt.Errorf("%s: %w", name, results[name]))
	}
	return errors.Join(errs...)
}
