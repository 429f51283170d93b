package ports

import (
	"context"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
)

// Runner defines the service port for running failure demonstrations.
// Implemented by the application layer; called by the entry point.
type Runner interface {
	// Run invokes a single trigger, classifies its outcome, and writes the
	// report to the sink. Returns a *domain.ContractViolationError (wrapping
	// domain.ErrContractViolation) when the outcome's kind is neither none nor
	// the trigger's expected kind; no report is written in that case.
	Run(ctx context.Context, trigger domain.Trigger) (domain.Report, error)

	// RunAll runs the triggers sequentially in order. It stops at the first
	// error and returns the reports collected up to that point.
	RunAll(ctx context.Context, triggers []domain.Trigger) ([]domain.Report, error)
}

// ReportSink accepts report lines. Implemented by output adapters.
type ReportSink interface {
	// Emit writes one line of text. The line carries no trailing newline.
	Emit(ctx context.Context, line string) error
}
