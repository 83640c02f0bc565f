package protocol

import "errors"

// Code is a machine-readable decode error code.
type Code string

const (
	CodeOK                  Code = "OK"
	CodeUnknown             Code = "UNKNOWN"
	CodeExceptionResponse   Code = "EXCEPTION_RESPONSE"
	CodeEnvelope            Code = "ENVELOPE_ERROR"
	CodeCursorUnderflow     Code = "CURSOR_UNDERFLOW"
	CodeStringTableOverflow Code = "STRING_TABLE_OVERFLOW"
	CodeUnknownType         Code = "UNKNOWN_TYPE"
	CodeDanglingBackRef     Code = "DANGLING_BACK_REFERENCE"
	CodeTypeMismatch        Code = "TYPE_MISMATCH"
	CodeTrailingValues      Code = "TRAILING_VALUES"
	CodeInvalidValue        Code = "INVALID_VALUE"
)

// CodeOf maps an error returned by the decoder packages to its code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrExceptionResponse):
		return CodeExceptionResponse
	case errors.Is(err, ErrMalformedEnvelope):
		return CodeEnvelope
	case errors.Is(err, ErrCursorUnderflow):
		return CodeCursorUnderflow
	case errors.Is(err, ErrStringTableOverflow):
		return CodeStringTableOverflow
	case errors.Is(err, ErrUnknownType):
		return CodeUnknownType
	case errors.Is(err, ErrDanglingBackRef):
		return CodeDanglingBackRef
	case errors.Is(err, ErrTypeMismatch):
		return CodeTypeMismatch
	case errors.Is(err, ErrTrailingValues):
		return CodeTrailingValues
	case errors.Is(err, ErrFractionalValue),
		errors.Is(err, ErrInvalidTimestamp),
		errors.Is(err, ErrNegativeCount),
		errors.Is(err, ErrDepthExceeded):
		return CodeInvalidValue
	default:
		return CodeUnknown
	}
}
