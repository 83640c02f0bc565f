package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrBadPrefix           = errors.New("protocol: unrecognized status prefix")
	ErrMalformedEnvelope   = errors.New("protocol: malformed envelope")
	ErrExceptionResponse   = errors.New("protocol: exception response")
	ErrCursorUnderflow     = errors.New("protocol: cursor underflow")
	ErrFractionalValue     = errors.New("protocol: fractional value where integer required")
	ErrStringTableOverflow = errors.New("protocol: string table index out of range")
	ErrUnknownType         = errors.New("protocol: unknown type")
	ErrDanglingBackRef     = errors.New("protocol: dangling back-reference")
	ErrTypeMismatch        = errors.New("protocol: type mismatch")
	ErrTrailingValues      = errors.New("protocol: trailing values after root object")
	ErrInvalidTimestamp    = errors.New("protocol: invalid timestamp")
	ErrDepthExceeded       = errors.New("protocol: object nesting too deep")
	ErrNegativeCount       = errors.New("protocol: negative collection count")
)

// EnvelopeError reports a payload that does not match the fixed positional layout.
type EnvelopeError struct {
	Reason string
	Err    error
}

func (e *EnvelopeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: envelope: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("protocol: envelope: %s", e.Reason)
}

func (e *EnvelopeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedEnvelope}
	}
	return []error{ErrMalformedEnvelope, e.Err}
}

// ExceptionError is a server-signaled failure (//EX payload).
// Strings holds the exception's string table when the payload could be parsed.
type ExceptionError struct {
	Payload string
	Strings []string
}

func (e *ExceptionError) Error() string {
	if len(e.Strings) > 0 {
		return fmt.Sprintf("protocol: exception response: %s", e.Strings[0])
	}
	return "protocol: exception response"
}

func (e *ExceptionError) Unwrap() error { return ErrExceptionResponse }

// CursorError reports a read at or past the start of the flat value sequence.
type CursorError struct {
	Position int
	Err      error
}

func (e *CursorError) Error() string {
	return fmt.Sprintf("%v at position %d", e.Err, e.Position)
}

func (e *CursorError) Unwrap() error { return e.Err }

// StringIndexError reports a string table reference outside the table.
type StringIndexError struct {
	Index int64
	Size  int
}

func (e *StringIndexError) Error() string {
	return fmt.Sprintf("protocol: string table index %d out of range (size=%d)", e.Index, e.Size)
}

func (e *StringIndexError) Unwrap() error { return ErrStringTableOverflow }

// UnknownTypeError carries the exact class signature missing from the registry.
type UnknownTypeError struct {
	Signature string
	Position  int
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("protocol: unknown type %q at position %d", e.Signature, e.Position)
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

// BackReferenceError reports a negative marker pointing at a slot that was never allocated.
type BackReferenceError struct {
	Marker int64
	Index  int
	Size   int
}

func (e *BackReferenceError) Error() string {
	return fmt.Sprintf("protocol: dangling back-reference marker=%d index=%d cache_size=%d", e.Marker, e.Index, e.Size)
}

func (e *BackReferenceError) Unwrap() error { return ErrDanglingBackRef }

// TypeMismatchError reports an object whose registered type is not the one a field layout expects.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("protocol: field %s: want %s, got %s", e.Field, e.Want, e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// TrailingValuesError reports flat values left unread after the root object.
type TrailingValuesError struct {
	Remaining int
}

func (e *TrailingValuesError) Error() string {
	return fmt.Sprintf("protocol: %d trailing values after root object", e.Remaining)
}

func (e *TrailingValuesError) Unwrap() error { return ErrTrailingValues }

// Retryable reports whether a caller may reasonably re-fetch and retry.
// Only exception and envelope failures qualify; everything else is a decoder/table mismatch.
func Retryable(err error) bool {
	return errors.Is(err, ErrExceptionResponse) || errors.Is(err, ErrMalformedEnvelope)
}
