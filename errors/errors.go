/*
Package errors implements the closed error taxonomy of the codegraph core.

The graph store wraps the failures of its own checks and of its backend
point reads and batch writes in a GraphError, so callers can test the
failure mode with errors.Is against one of the sentinel Kind values
below without caring which backend produced it. Not every error is
wrapped: storage.Backend implementations return their own errors
unchanged, and record-decoding errors, backend scan errors and errors
returned from scan callbacks pass through graph.Store's GetNode,
GetEdge, ScanNodes and ScanEdges (and the query and export layers built
on them) as they are.
*/
package errors

import (
	"errors"
	"fmt"
)

/*
Kind is one of the ten closed error categories a core operation can fail with.
*/
type Kind error

/*
Sentinel kinds. Compare with errors.Is(err, ErrNotFound) etc, never by
string matching.
*/
var (
	ErrNotFound        Kind = errors.New("not-found")
	ErrStorage         Kind = errors.New("storage")
	ErrInvalidArgument Kind = errors.New("invalid-argument")
	ErrBatchFailed     Kind = errors.New("batch-failed")
	ErrDepthExceeded   Kind = errors.New("depth-exceeded")
	ErrExportTooLarge  Kind = errors.New("export-too-large")
	ErrIO              Kind = errors.New("io-error")
	ErrParse           Kind = errors.New("parse-error")
	ErrFileTooLarge    Kind = errors.New("file-too-large")
	ErrTimeout         Kind = errors.New("timeout")
)

/*
GraphError is the concrete error type returned by every fallible core
operation. Type carries the sentinel Kind (for errors.Is), Detail adds
human-readable context, and Cause optionally wraps the underlying error.
*/
type GraphError struct {
	Type   Kind
	Detail string
	Cause  error
}

/*
Error returns a human-readable string representation of this error.
*/
func (ge *GraphError) Error() string {
	switch {
	case ge.Detail != "" && ge.Cause != nil:
		return fmt.Sprintf("%v: %v (%v)", ge.Type, ge.Detail, ge.Cause)
	case ge.Detail != "":
		return fmt.Sprintf("%v: %v", ge.Type, ge.Detail)
	default:
		return fmt.Sprintf("%v", ge.Type)
	}
}

/*
Unwrap lets errors.Is/errors.As see through to both the sentinel Kind and
the wrapped Cause.
*/
func (ge *GraphError) Unwrap() []error {
	if ge.Cause != nil {
		return []error{ge.Type, ge.Cause}
	}
	return []error{ge.Type}
}

/*
New builds a GraphError of the given kind with a formatted detail message.
*/
func New(kind Kind, format string, args ...interface{}) *GraphError {
	return &GraphError{Type: kind, Detail: fmt.Sprintf(format, args...)}
}

/*
Wrap builds a GraphError of the given kind around a lower-level cause.
*/
func Wrap(kind Kind, cause error, format string, args ...interface{}) *GraphError {
	return &GraphError{Type: kind, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

/*
Is reports whether err is a GraphError of the given kind, following the
wrapped chain.
*/
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}
