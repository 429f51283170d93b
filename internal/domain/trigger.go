package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Op is the capability a trigger exercises. It either returns nil, returns an
// error, or panics.
type Op func(ctx context.Context) error

// Trigger is a named operation constructed to fail with one documented kind.
type Trigger struct {
	Name     string
	Expected Kind
	Op       Op
}

// Validate checks that the trigger can be run.
// Returns a *ValidationError with per-field details, or nil.
func (t Trigger) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(t.Name) == "" {
		fields["name"] = "is required"
	}
	if !t.Expected.IsValid() {
		fields["expected"] = fmt.Sprintf("invalid: %q", t.Expected)
	}
	if t.Op == nil {
		fields["op"] = "is required"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Outcome is the classified result of invoking a trigger's Op.
type Outcome struct {
	Kind    Kind
	Message string
	Err     error
}

// Failed reports whether the operation did not complete normally.
func (o Outcome) Failed() bool {
	return o.Kind != KindNone
}

// Report is the human-readable record of a trigger's outcome.
type Report struct {
	Trigger  string
	Expected Kind
	Kind     Kind
	Message  string
	Duration time.Duration
}

// NewReport builds the report for a trigger from its outcome.
func NewReport(t Trigger, o Outcome, elapsed time.Duration) Report {
	return Report{
		Trigger:  t.Name,
		Expected: t.Expected,
		Kind:     o.Kind,
		Message:  o.Message,
		Duration: elapsed,
	}
}

// Caught reports whether a failure was absorbed.
func (r Report) Caught() bool {
	return r.Kind != KindNone
}

// String renders the report line written to the sink.
func (r Report) String() string {
	if !r.Caught() {
		return "no failure"
	}
	return fmt.Sprintf("caught: %s: %s", r.Kind, r.Message)
}

// Matches reports whether the outcome has the declared kind. A clean
// completion matches only a trigger that declares KindNone.
func (t Trigger) Matches(o Outcome) bool {
	return o.Kind == t.Expected
}

var errCompletedCleanly = errors.New("completed without failure")

// ViolationFor builds the error returned when an outcome does not match.
func (t Trigger) ViolationFor(o Outcome) *ContractViolationError {
	cause := o.Err
	switch {
	case cause == nil && o.Kind == KindNone:
		cause = errCompletedCleanly
	case cause == nil:
		cause = errors.New(o.Message)
	}
	return &ContractViolationError{
		Trigger:  t.Name,
		Expected: t.Expected,
		Got:      o.Kind,
		Err:      cause,
	}
}
