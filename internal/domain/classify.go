package domain

import (
	"errors"
	"io"
	"io/fs"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"
)

// Classify maps an error onto the failure taxonomy. A nil error is KindNone;
// anything no rule recognizes is KindUnknown.
func Classify(err error) Outcome {
	if err == nil {
		return Outcome{Kind: KindNone}
	}
	return Outcome{Kind: kindOf(err), Message: err.Error(), Err: err}
}

// FromPanic converts a recovered panic value into an error suitable for
// Classify. runtime.Error and error values are kept as-is so their chain
// stays inspectable; anything else becomes a *PanicError.
func FromPanic(v any) error {
	switch p := v.(type) {
	case runtime.Error:
		return p
	case error:
		return p
	default:
		return &PanicError{Value: v, Stack: debug.Stack()}
	}
}

// kindOf checks the sentinels adapters wrap on purpose before the raw
// standard library values, which may sit deeper in the same chain (a dropped
// connection carries io.EOF under ErrUnavailable).
func kindOf(err error) Kind {
	if k, ok := sentinelKind(err); ok {
		return k
	}

	var typeErr *runtime.TypeAssertionError
	var numErr *strconv.NumError
	var rtErr runtime.Error

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindResourceNotFound
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return KindStreamExhausted
	case errors.As(err, &typeErr):
		return KindInvalidCast
	case errors.As(err, &numErr), errors.Is(err, strconv.ErrSyntax), errors.Is(err, strconv.ErrRange):
		return KindInvalidNumericFormat
	case errors.As(err, &rtErr):
		return runtimeKind(rtErr)
	default:
		return KindUnknown
	}
}

func sentinelKind(err error) (Kind, bool) {
	switch {
	case errors.Is(err, ErrUnavailable):
		return KindConnectionUnavailable, true
	case errors.Is(err, ErrTypeNotFound):
		return KindTypeNotFound, true
	case errors.Is(err, ErrNotFound):
		return KindResourceNotFound, true
	case errors.Is(err, ErrValidation):
		return KindInvalidArgument, true
	case errors.Is(err, ErrStreamExhausted):
		return KindStreamExhausted, true
	case errors.Is(err, ErrInvalidCast):
		return KindInvalidCast, true
	case errors.Is(err, ErrArithmetic):
		return KindArithmeticInvalid, true
	case errors.Is(err, ErrNilReference):
		return KindNullReference, true
	case errors.Is(err, ErrIndexOutOfRange):
		return KindIndexOutOfRange, true
	default:
		return "", false
	}
}

// runtimeKind classifies runtime panics by their message. The runtime does
// not export distinct types for these.
func runtimeKind(err runtime.Error) Kind {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "divide by zero"):
		return KindArithmeticInvalid
	case strings.Contains(msg, "nil pointer dereference"), strings.Contains(msg, "nil map"):
		return KindNullReference
	case strings.Contains(msg, "index out of range"), strings.Contains(msg, "slice bounds out of range"):
		return KindIndexOutOfRange
	default:
		return KindUnknown
	}
}
