package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking. Adapters wrap collaborator
// failures with these so that classification never needs to import a driver
// or client package.
var (
	ErrNotFound          = errors.New("not found")
	ErrStreamExhausted   = errors.New("stream exhausted")
	ErrUnavailable       = errors.New("unavailable")
	ErrTypeNotFound      = errors.New("type not found")
	ErrArithmetic        = errors.New("arithmetic error")
	ErrNilReference      = errors.New("nil reference")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidCast       = errors.New("invalid cast")
	ErrValidation        = errors.New("validation error")
	ErrContractViolation = errors.New("contract violation")
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ContractViolationError is returned by the runner when a trigger fails with a
// kind other than the one it declares, or when the trigger itself is
// malformed. It is never absorbed into a report.
type ContractViolationError struct {
	Trigger  string
	Expected Kind
	Got      Kind
	Err      error
}

func (e *ContractViolationError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("%s: trigger %q: %v", ErrContractViolation, e.Trigger, e.Err)
	}
	return fmt.Sprintf("%s: trigger %q expected %s, got %s: %v",
		ErrContractViolation, e.Trigger, e.Expected, e.Got, e.Err)
}

// Unwrap exposes both ErrContractViolation and the underlying cause.
func (e *ContractViolationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrContractViolation}
	}
	return []error{ErrContractViolation, e.Err}
}

// PanicError carries a recovered panic value that is neither a runtime.Error
// nor an error. It always classifies as KindUnknown.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
