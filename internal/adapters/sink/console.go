// Package sink provides report sinks that write demonstration output.
package sink

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

var _ ports.ReportSink = (*Console)(nil)

// Console writes each line, newline-terminated, to an io.Writer.
// Safe for concurrent use.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a sink writing to w (normally os.Stdout).
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// Emit writes line followed by a newline. It fails without writing if ctx is
// already done.
func (c *Console) Emit(ctx context.Context, line string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := io.WriteString(c.w, line+"\n"); err != nil {
		return fmt.Errorf("writing report line: %w", err)
	}
	return nil
}
