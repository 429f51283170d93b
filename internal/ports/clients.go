package ports

import (
	"context"
	"io"
)

// FileStore opens files for the file-based demonstrations.
// Implemented by the files adapter.
type FileStore interface {
	// Open returns a reader for the named file. The caller must close it.
	// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist).
	Open(name string) (io.ReadCloser, error)
}

// DatabaseConnector attempts database connections.
// Implemented by the database adapter.
type DatabaseConnector interface {
	// Connect opens a connection to dsn, verifies it, and releases it.
	// Returns domain.ErrUnavailable (wrapped) if no connection can be made.
	Connect(ctx context.Context, dsn string) error
}

// TypeResolver looks up named types at run time, the way a class loader
// would. Implemented by the registry adapter.
type TypeResolver interface {
	// Resolve returns a fresh instance of the type registered under name.
	// Returns domain.ErrTypeNotFound (wrapped) if nothing is registered.
	Resolve(ctx context.Context, name string) (any, error)
}

// StatusClient defines the client port for the downstream status service.
// Implemented by the status adapter.
type StatusClient interface {
	// FetchStatus returns the status text reported by the downstream service.
	// Returns domain.ErrUnavailable (wrapped) if the service cannot be reached.
	FetchStatus(ctx context.Context) (string, error)
}
