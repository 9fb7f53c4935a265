// Package errors provides standardized error handling for quickswitch.
// It defines the error kinds the navigator distinguishes and helper
// functions for consistent error creation, wrapping, and inspection.
package errors

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// NotFound: the path vanished between selection and use
	NotFound
	// AccessDenied: permissions forbid reading the path
	AccessDenied
	// NotADirectory: the path's kind changed under us
	NotADirectory
	// DecodeFailure: image or document content could not be decoded
	DecodeFailure
	// IoFailure: generic read error
	IoFailure
	// PersistenceFailure: history load/save failed
	PersistenceFailure
)

// PathError is the error type for failures tied to a filesystem path.
type PathError struct {
	msg  string
	path string
	kind ErrorKind
	err  error
}

// NewPathError creates a new path error
func NewPathError(msg, path string, kind ErrorKind, err error) *PathError {
	return &PathError{msg: msg, path: path, kind: kind, err: err}
}

// Error returns the error message
func (e *PathError) Error() string {
	switch {
	case e.path != "" && e.err != nil:
		return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
	case e.path != "":
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	case e.err != nil:
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *PathError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *PathError) Kind() ErrorKind {
	return e.kind
}

// Path returns the path associated with the error
func (e *PathError) Path() string {
	return e.path
}

// FromListError classifies an error returned while listing or statting
// path into the navigator's taxonomy.
func FromListError(path string, err error) *PathError {
	switch {
	case err == nil:
		return nil
	case os.IsNotExist(err):
		return NewPathError("directory not found", path, NotFound, err)
	case os.IsPermission(err):
		return NewPathError("access denied", path, AccessDenied, err)
	case errors.Is(err, syscall.ENOTDIR):
		return NewPathError("not a directory", path, NotADirectory, err)
	default:
		return NewPathError("read failed", path, IoFailure, err)
	}
}

// New creates a new error with a message
func New(msg string) error {
	return &PathError{msg: msg, kind: Unknown}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &PathError{msg: fmt.Sprintf(format, args...), kind: Unknown}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &PathError{msg: msg, err: err, kind: kindOf(err)}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &PathError{msg: fmt.Sprintf(format, args...), err: err, kind: kindOf(err)}
}

// WrapKind wraps an existing error with context and an explicit kind.
func WrapKind(err error, kind ErrorKind, msg string) error {
	if err == nil {
		return nil
	}
	return &PathError{msg: msg, err: err, kind: kind}
}

// WrapKindf is WrapKind with a formatted message.
func WrapKindf(err error, kind ErrorKind, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &PathError{msg: fmt.Sprintf(format, args...), err: err, kind: kind}
}

func kindOf(err error) ErrorKind {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return pathErr.kind
	}
	return Unknown
}

// IsKind checks whether err carries the given kind anywhere in its chain
func IsKind(err error, kind ErrorKind) bool {
	var pathErr *PathError
	if errors.As(err, &pathErr) {
		return pathErr.Kind() == kind
	}
	return false
}

// IsNotFound checks if the error is a not-found error
func IsNotFound(err error) bool {
	return IsKind(err, NotFound)
}

// IsAccessDenied checks if the error is an access-denied error
func IsAccessDenied(err error) bool {
	return IsKind(err, AccessDenied)
}

// IsNotADirectory checks if the error reports a non-directory path
func IsNotADirectory(err error) bool {
	return IsKind(err, NotADirectory)
}

// IsDecodeFailure checks if the error is a preview decode failure
func IsDecodeFailure(err error) bool {
	return IsKind(err, DecodeFailure)
}

// IsPersistenceFailure checks if the error is a history persistence failure
func IsPersistenceFailure(err error) bool {
	return IsKind(err, PersistenceFailure)
}
