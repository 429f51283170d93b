// Package registry resolves types by name at run time. Type providers live in
// a samber/do container of their own, so only registered names resolve and a
// missing name surfaces as the container's service-not-found error, wrapped as
// domain.ErrTypeNotFound.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
	"github.com/jsamuelsen11/go-failure-demos/internal/domain/person"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

// PersonType is the name under which [person.Person] is registered by
// [NewWithDefaults].
const PersonType = "com.example.Person"

var _ ports.TypeResolver = (*Registry)(nil)

// Factory returns a fresh instance of a registered type.
type Factory func() any

// Registry implements [ports.TypeResolver].
type Registry struct {
	types  *do.RootScope
	logger *slog.Logger
}

// NotFoundError reports a name with no registered type. It unwraps to
// domain.ErrTypeNotFound and to the container's lookup error.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return "type not found: " + e.Name
}

func (e *NotFoundError) Unwrap() []error {
	return []error{domain.ErrTypeNotFound, e.Err}
}

// New creates an empty registry. It never shares a container with the
// application, so application services are not reachable by name. A nil
// logger discards logs.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Registry{types: do.New(), logger: logger}
}

// NewWithDefaults creates a registry holding the program's own entity types.
func NewWithDefaults(logger *slog.Logger) *Registry {
	r := New(logger)
	r.Register(PersonType, func() any { return &person.Person{} })
	return r
}

// Register binds name to factory. Every Resolve of name calls factory anew.
func (r *Registry) Register(name string, factory Factory) {
	do.ProvideNamedTransient[any](r.types, name, func(_ do.Injector) (any, error) {
		return factory(), nil
	})
}

// Resolve returns a new instance of the type registered under name.
func (r *Registry) Resolve(ctx context.Context, name string) (any, error) {
	v, err := do.InvokeNamed[any](r.types, name)
	if errors.Is(err, do.ErrServiceNotFound) {
		r.logger.DebugContext(ctx, "type not registered",
			slog.String("operation", "registry.Resolve"),
			slog.String("type", name),
		)
		return nil, &NotFoundError{Name: name, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("resolving type %s: %w", name, err)
	}
	return v, nil
}
