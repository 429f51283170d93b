package ports

import "context"

// HealthChecker is implemented by any collaborator that can report whether it
// is ready before the catalogue runs. Examples: the status client's circuit
// breaker, the file store's work directory.
type HealthChecker interface {
	// Name returns a human-readable identifier for this component
	// (e.g., "status-api", "work-dir").
	Name() string

	// HealthCheck performs the health check and returns nil if healthy,
	// or an error describing the failure.
	// Implementations should respect context cancellation and deadlines.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry manages registration and execution of health checkers.
// Used by the entry point as a preflight before running the catalogue.
type HealthRegistry interface {
	// Register adds a HealthChecker to the registry.
	Register(checker HealthChecker)

	// CheckAll executes all registered health checks and returns results
	// keyed by checker name. Nil values indicate healthy components.
	CheckAll(ctx context.Context) map[string]error

	// Preflight runs all checks and joins the failures into one error,
	// or returns nil when every component is healthy.
	Preflight(ctx context.Context) error
}
