package toon

import "fmt"

// ErrorKind classifies decode and bind failures.
type ErrorKind uint8

const (
	ErrInvalidSyntax ErrorKind = iota
	ErrMissingColon
	ErrInvalidHeader
	ErrInvalidLength
	ErrCountMismatch
	ErrWidthMismatch
	ErrInvalidIndentation
	ErrInvalidEscape
	ErrUnterminatedString
	ErrBlankLineInArray

	// Reflective bind errors
	ErrTypeMismatch
	ErrArraySizeMismatch
	ErrMissingField
	ErrInvalidEnumValue
	ErrInvalidUnionTag
	ErrUnsupportedType
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidSyntax:
		return "invalid syntax"
	case ErrMissingColon:
		return "missing colon"
	case ErrInvalidHeader:
		return "invalid array header"
	case ErrInvalidLength:
		return "invalid array length"
	case ErrCountMismatch:
		return "count mismatch"
	case ErrWidthMismatch:
		return "width mismatch"
	case ErrInvalidIndentation:
		return "invalid indentation"
	case ErrInvalidEscape:
		return "invalid escape"
	case ErrUnterminatedString:
		return "unterminated string"
	case ErrBlankLineInArray:
		return "blank line in array"
	case ErrTypeMismatch:
		return "type mismatch"
	case ErrArraySizeMismatch:
		return "array size mismatch"
	case ErrMissingField:
		return "missing field"
	case ErrInvalidEnumValue:
		return "invalid enum value"
	case ErrInvalidUnionTag:
		return "invalid union tag"
	case ErrUnsupportedType:
		return "unsupported type"
	default:
		return "unknown error"
	}
}

// DecodeError is the error type returned by Unmarshal and the
// reflective binder. Line is 1-based and zero when the error is not
// tied to a source line.
type DecodeError struct {
	Kind ErrorKind
	Msg  string
	Line int
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("toon: line %d: %s: %s", e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("toon: %s: %s", e.Kind, e.Msg)
}

// Is supports errors.Is matching against another *DecodeError by kind.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

func decodeErr(kind ErrorKind, line int, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line}
}

func bindErr(kind ErrorKind, format string, args ...interface{}) *DecodeError {
	return &DecodeError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
