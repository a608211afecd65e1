package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies an Error.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors that did not originate here.
	KindUnknown Kind = iota
	KindIO
	KindCorruptEntry
	KindNotFound
	KindAlreadyExists
	KindAlreadyInitialized
	KindAuthFailure
	KindRemote
	KindRebaseConflict
	KindConfig
	KindInvalidInput
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io error"
	case KindCorruptEntry:
		return "corrupt entry"
	case KindNotFound:
		return "not found"
	case KindAlreadyExists:
		return "already exists"
	case KindAlreadyInitialized:
		return "already initialized"
	case KindAuthFailure:
		return "authentication failure"
	case KindRemote:
		return "remote error"
	case KindRebaseConflict:
		return "rebase conflict"
	case KindConfig:
		return "configuration error"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// Error is the structured error returned by the core packages.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "read item" or "push".
	Op string
	// Path is the file or directory involved, if any.
	Path string
	// Expected and Actual are field counts for CorruptEntry errors.
	Expected int
	Actual   int
	// Detail is a human readable explanation.
	Detail string
	Err    error

	sentinel bool
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Expected > 0 {
		fmt.Fprintf(&b, " (expected %d fields, found %d)", e.Expected, e.Actual)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.sentinel && t.Kind == e.Kind
}

// Sentinels, one per kind. Match them with errors.Is.
var (
	ErrIO                 = newSentinel(KindIO)
	ErrCorruptEntry       = newSentinel(KindCorruptEntry)
	ErrNotFound           = newSentinel(KindNotFound)
	ErrAlreadyExists      = newSentinel(KindAlreadyExists)
	ErrAlreadyInitialized = newSentinel(KindAlreadyInitialized)
	ErrAuthFailure        = newSentinel(KindAuthFailure)
	ErrRemote             = newSentinel(KindRemote)
	ErrRebaseConflict     = newSentinel(KindRebaseConflict)
	ErrConfig             = newSentinel(KindConfig)
	ErrInvalidInput       = newSentinel(KindInvalidInput)
)

func newSentinel(k Kind) *Error {
	return &Error{Kind: k, sentinel: true}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// New returns an Error of the given kind.
func New(kind Kind, op, detail string) *Error {
	return &Error{Kind: kind, Op: op, Detail: detail}
}

// Wrap returns an Error of the given kind wrapping err. A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// IO wraps a filesystem failure on path.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// CorruptEntry reports a malformed item or index file. expected and actual
// are field counts; pass zero for both when the count is not meaningful.
func CorruptEntry(path string, expected, actual int, detail string) error {
	return &Error{
		Kind:     KindCorruptEntry,
		Op:       "decode",
		Path:     path,
		Expected: expected,
		Actual:   actual,
		Detail:   detail,
	}
}

// Is is a shorthand for errors.Is from the standard library.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As is a shorthand for errors.As from the standard library.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
