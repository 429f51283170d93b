// Package database implements the connector used by the database
// demonstration. It opens a database/sql pool for a DSN, verifies it with a
// ping, and always releases it again.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

// DriverName is the database/sql driver used for sqlite DSNs.
const DriverName = "sqlite"

var _ ports.DatabaseConnector = (*Connector)(nil)

// ErrNoDriver is returned for a DSN whose scheme no registered driver serves.
var ErrNoDriver = errors.New("no suitable driver")

// Connector implements [ports.DatabaseConnector].
type Connector struct {
	pingTimeout time.Duration
	logger      *slog.Logger
}

// NewConnector creates a connector that waits at most pingTimeout for the
// database to answer. A nil logger discards logs.
func NewConnector(pingTimeout time.Duration, logger *slog.Logger) *Connector {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Connector{pingTimeout: pingTimeout, logger: logger}
}

// Connect opens dsn, pings it, and closes the pool. The scheme picks the
// driver: "file:" and "sqlite:" DSNs use modernc sqlite; any other DSN has no
// driver. Every failure wraps domain.ErrUnavailable.
func (c *Connector) Connect(ctx context.Context, dsn string) (err error) {
	source, ok := sqliteSource(dsn)
	if !ok {
		return fmt.Errorf("%w: %w found for %q", domain.ErrUnavailable, ErrNoDriver, dsn)
	}

	logger := logging.FromContext(ctx)
	logger.DebugContext(ctx, "connecting to database",
		slog.String("driver", DriverName),
		slog.String("dsn", dsn),
	)

	db, err := sql.Open(DriverName, source)
	if err != nil {
		return fmt.Errorf("%w: opening %q: %w", domain.ErrUnavailable, dsn, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "failed to close database pool",
				slog.String("operation", "database.Connect"),
				slog.Any("error", closeErr),
			)
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("%w: connecting to %q: %w", domain.ErrUnavailable, dsn, err)
	}

	return nil
}

// sqliteSource maps a DSN to the data source understood by the sqlite
// driver, reporting false when the DSN is not a sqlite DSN.
func sqliteSource(dsn string) (string, bool) {
	switch {
	case strings.HasPrefix(dsn, "file:"):
		return dsn, true
	case strings.HasPrefix(dsn, "sqlite://"):
		return strings.TrimPrefix(dsn, "sqlite://"), true
	case strings.HasPrefix(dsn, "sqlite:"):
		return strings.TrimPrefix(dsn, "sqlite:"), true
	default:
		return "", false
	}
}
