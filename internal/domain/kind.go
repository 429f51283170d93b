package domain

import "fmt"

// Kind is the closed classification of why an operation did not complete
// normally.
type Kind string

const (
	KindNone                  Kind = "none"
	KindResourceNotFound      Kind = "resource-not-found"
	KindStreamExhausted       Kind = "stream-exhausted"
	KindConnectionUnavailable Kind = "connection-unavailable"
	KindTypeNotFound          Kind = "type-not-found"
	KindArithmeticInvalid     Kind = "arithmetic-invalid"
	KindNullReference         Kind = "null-reference"
	KindIndexOutOfRange       Kind = "index-out-of-range"
	KindInvalidCast           Kind = "invalid-cast"
	KindInvalidArgument       Kind = "invalid-argument"
	KindInvalidNumericFormat  Kind = "invalid-numeric-format"

	// KindUnknown is what classification yields for anything outside the
	// taxonomy. It is never a valid expected kind.
	KindUnknown Kind = "unknown"
)

// Kinds lists every kind a trigger may declare, in taxonomy order.
func Kinds() []Kind {
	return []Kind{
		KindNone,
		KindResourceNotFound,
		KindStreamExhausted,
		KindConnectionUnavailable,
		KindTypeNotFound,
		KindArithmeticInvalid,
		KindNullReference,
		KindIndexOutOfRange,
		KindInvalidCast,
		KindInvalidArgument,
		KindInvalidNumericFormat,
	}
}

// IsValid returns true if the kind is one a trigger may declare.
func (k Kind) IsValid() bool {
	switch k {
	case KindNone, KindResourceNotFound, KindStreamExhausted, KindConnectionUnavailable,
		KindTypeNotFound, KindArithmeticInvalid, KindNullReference, KindIndexOutOfRange,
		KindInvalidCast, KindInvalidArgument, KindInvalidNumericFormat:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// ParseKind converts the string form back into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("%w: unknown failure kind %q", ErrValidation, s)
	}
	return k, nil
}
