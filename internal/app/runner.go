// Package app provides the application services. Runner drives the failure
// demonstrations: it invokes each trigger, recovers panics at its boundary,
// classifies the outcome, and writes the report to a sink.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/go-failure-demos/internal/domain"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/logging"
	"github.com/jsamuelsen11/go-failure-demos/internal/platform/telemetry"
	"github.com/jsamuelsen11/go-failure-demos/internal/ports"
)

// HeadingPrefix starts the line RunAll writes before each trigger.
const HeadingPrefix = "== "

// Metric result values.
const (
	resultClean     = "clean"
	resultCaught    = "caught"
	resultViolation = "violation"
	resultSinkError = "sink_error"
)

var _ ports.Runner = (*Runner)(nil)

// Runner implements [ports.Runner]. It runs triggers one at a time and never
// retries.
type Runner struct {
	sink    ports.ReportSink
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// NewRunner creates a Runner writing to sink. A nil logger discards logs and
// nil metrics disables recording.
func NewRunner(sink ports.ReportSink, logger *slog.Logger, metrics *telemetry.Metrics) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{sink: sink, logger: logger, metrics: metrics}
}

// Run invokes one trigger and reports its outcome.
//
// A clean completion is reported as "no failure" and a failure of the
// declared kind as "caught: {kind}: {message}". Any other kind, or a
// malformed trigger, returns a *domain.ContractViolationError and nothing is
// written to the sink.
func (r *Runner) Run(ctx context.Context, t domain.Trigger) (domain.Report, error) {
	if err := t.Validate(); err != nil {
		violation := &domain.ContractViolationError{Trigger: t.Name, Expected: t.Expected, Err: err}
		r.logger.ErrorContext(ctx, "malformed trigger",
			slog.String("operation", "Runner.Run"),
			slog.String("trigger", t.Name),
			slog.Any("error", violation),
		)
		return domain.Report{}, violation
	}

	ctx = logging.WithLogger(ctx, r.logger)
	ctx = logging.WithTrigger(ctx, t.Name)
	ctx = httpclient.WithTrigger(ctx, t.Name)
	logger := logging.FromContext(ctx)

	ctx, span := otel.GetTracerProvider().Tracer("app").Start(ctx, "trigger "+t.Name,
		trace.WithAttributes(
			attribute.String("trigger", t.Name),
			attribute.String("failure.expected", t.Expected.String()),
		),
	)
	defer span.End()

	start := time.Now()
	err := invoke(ctx, t.Op)
	elapsed := time.Since(start)

	outcome := domain.Classify(err)
	span.SetAttributes(attribute.String("failure.kind", outcome.Kind.String()))

	if !t.Matches(outcome) {
		violation := t.ViolationFor(outcome)
		span.RecordError(violation)
		span.SetStatus(codes.Error, violation.Error())
		logger.ErrorContext(ctx, "trigger failed outside its declared kind",
			slog.String("operation", "Runner.Run"),
			slog.String("expected", t.Expected.String()),
			slog.String("got", outcome.Kind.String()),
			slog.Any("error", violation),
		)
		logPanicStack(ctx, logger, err)
		r.record(ctx, t, outcome.Kind, resultViolation, elapsed)
		return domain.Report{}, violation
	}

	report := domain.NewReport(t, outcome, elapsed)
	if err := r.sink.Emit(ctx, report.String()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.record(ctx, t, outcome.Kind, resultSinkError, elapsed)
		return report, fmt.Errorf("emitting report for %q: %w", t.Name, err)
	}

	result := resultClean
	if report.Caught() {
		result = resultCaught
	}
	logger.DebugContext(ctx, "trigger reported",
		slog.String("kind", outcome.Kind.String()),
		slog.Duration("elapsed", elapsed),
	)
	r.record(ctx, t, outcome.Kind, result, elapsed)

	return report, nil
}

// RunAll runs triggers in order, writing a "== {name}" heading before each
// one. It stops at the first error and returns the reports collected so far.
func (r *Runner) RunAll(ctx context.Context, triggers []domain.Trigger) ([]domain.Report, error) {
	reports := make([]domain.Report, 0, len(triggers))

	for _, t := range triggers {
		if err := ctx.Err(); err != nil {
			return reports, err
		}

		if err := r.sink.Emit(ctx, HeadingPrefix+t.Name); err != nil {
			return reports, fmt.Errorf("emitting heading for %q: %w", t.Name, err)
		}

		report, err := r.Run(ctx, t)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}

	return reports, nil
}

// invoke runs op and turns a panic into an error.
func invoke(ctx context.Context, op domain.Op) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = domain.FromPanic(v)
		}
	}()
	return op(ctx)
}

func logPanicStack(ctx context.Context, logger *slog.Logger, err error) {
	var pe *domain.PanicError
	if errors.As(err, &pe) {
		logger.DebugContext(ctx, "panic stack", slog.String("stack", string(pe.Stack)))
	}
}

func (r *Runner) record(ctx context.Context, t domain.Trigger, kind domain.Kind, result string, elapsed time.Duration) {
	if r.metrics == nil {
		return
	}

	attrs := metric.WithAttributes(
		telemetry.AttrTrigger.String(t.Name),
		telemetry.AttrKind.String(kind.String()),
		telemetry.AttrResult.String(result),
	)
	r.metrics.TriggerRunTotal.Add(ctx, 1, attrs)
	r.metrics.TriggerDuration.Record(ctx, elapsed.Seconds(), attrs)
}
