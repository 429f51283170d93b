// Package files provides the work-directory file store used by the file
// demonstrations. Every handle it hands out is counted until closed, so tests
// can assert that failing triggers release their resources.
package files

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

var (
	_ ports.FileStore     = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Store opens files inside a single work directory.
type Store struct {
	dir    string
	root   *os.Root
	open   atomic.Int64
	logger *slog.Logger
}

// NewStore opens dir as the store root. The directory must exist.
// A nil logger discards logs.
func NewStore(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("opening work directory %s: %w", dir, err)
	}

	return &Store{dir: dir, root: root, logger: logger}, nil
}

// Open returns a reader for name, which must be a local path inside the work
// directory. A missing file yields an error matching fs.ErrNotExist.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	f, err := s.root.Open(name)
	if err != nil {
		return nil, err
	}

	s.open.Add(1)
	return &handle{File: f, store: s}, nil
}

// OpenHandles reports how many handles from Open are not yet closed.
func (s *Store) OpenHandles() int {
	return int(s.open.Load())
}

// Dir returns the work directory.
func (s *Store) Dir() string {
	return s.dir
}

// SeedFixture writes values as consecutive big-endian int32s to name unless
// the file already exists.
func (s *Store) SeedFixture(name string, values []int32) error {
	if err := checkName(name); err != nil {
		return err
	}

	f, err := s.root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		s.logger.Debug("fixture already present", slog.String("file", name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("creating fixture %s: %w", name, err)
	}

	if err := binary.Write(f, binary.BigEndian, values); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing fixture %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing fixture %s: %w", name, err)
	}

	s.logger.Debug("fixture written",
		slog.String("file", name),
		slog.Int("values", len(values)),
	)
	return nil
}

// Close releases the store root. Handles already returned by Open stay
// usable.
func (s *Store) Close() error {
	return s.root.Close()
}

// Name identifies the store in the health registry.
func (s *Store) Name() string {
	return "work-dir"
}

// HealthCheck verifies that the work directory still exists.
func (s *Store) HealthCheck(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("work-dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("work-dir: %s is not a directory", s.dir)
	}
	return nil
}

func checkName(name string) error {
	if !filepath.IsLocal(name) {
		return &domain.ValidationError{Fields: map[string]string{
			"name": fmt.Sprintf("must be a relative path inside the work directory, got %q", name),
		}}
	}
	return nil
}

// handle decrements the store's open count exactly once, however many times
// Close is called.
type handle struct {
	*os.File
	store *Store
	once  sync.Once
}

func (h *handle) Close() error {
	err := h.File.Close()
	h.once.Do(func() { h.store.open.Add(-1) })
	return err
}
