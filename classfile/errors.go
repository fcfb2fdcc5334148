package classfile

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes a decoding failure.
type ErrorKind uint8

const (
	Truncated ErrorKind = iota + 1
	UnknownTag
	MalformedEncoding
	DanglingReference
	TypeMismatch
	InvalidDescriptor
)

func (k ErrorKind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case UnknownTag:
		return "unknown tag"
	case MalformedEncoding:
		return "malformed encoding"
	case DanglingReference:
		return "dangling reference"
	case TypeMismatch:
		return "type mismatch"
	case InvalidDescriptor:
		return "invalid descriptor"
	default:
		return fmt.Sprintf("error kind %d", uint8(k))
	}
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrTruncated         = &Error{Kind: Truncated}
	ErrUnknownTag        = &Error{Kind: UnknownTag}
	ErrMalformedEncoding = &Error{Kind: MalformedEncoding}
	ErrDanglingReference = &Error{Kind: DanglingReference}
	ErrTypeMismatch      = &Error{Kind: TypeMismatch}
	ErrInvalidDescriptor = &Error{Kind: InvalidDescriptor}
)

// Error describes where and why decoding stopped. Index is the 1-based
// constant pool slot being decoded or resolved and Ref the slot it pointed
// at (both 0 when not applicable). Offset is the byte position relative to
// the start of the decoded buffer, or -1 when unknown.
type Error struct {
	Kind   ErrorKind
	Index  uint16
	Ref    uint16
	Offset int
	Tag    ConstantTag
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Index != 0 {
		fmt.Fprintf(&b, " at constant pool index %d", e.Index)
	}
	if e.Tag != 0 {
		fmt.Fprintf(&b, " [%s]", e.Tag)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(&b, " (offset %d)", e.Offset)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

func newError(kind ErrorKind, offset int, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Detail: fmt.Sprintf(format, args...),
	}
}

func refError(kind ErrorKind, ref uint16, format string, args ...any) *Error {
	return &Error{
		Kind:   kind,
		Ref:    ref,
		Offset: -1,
		Detail: fmt.Sprintf(format, args...),
	}
}
