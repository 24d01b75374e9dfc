package services

import (
	"errors"
	"fmt"
)

// ErrorKind tags every failure reported by the extraction and matching core.
type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindOversizedInput    ErrorKind = "oversized_input"
	KindExtractionFailure ErrorKind = "extraction_failure"
	KindNoEntitiesFound   ErrorKind = "no_entities_found"
	KindResourceMissing   ErrorKind = "resource_missing"
)

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrUnsupportedFormat = &Error{Kind: KindUnsupportedFormat, Message: "unsupported file format"}
	ErrOversizedInput    = &Error{Kind: KindOversizedInput, Message: "file exceeds size limit"}
	ErrExtractionFailure = &Error{Kind: KindExtractionFailure, Message: "failed to extract text"}
	ErrNoEntitiesFound   = &Error{Kind: KindNoEntitiesFound, Message: "no relevant information found"}
	ErrResourceMissing   = &Error{Kind: KindResourceMissing, Message: "resource not found"}
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func newError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
