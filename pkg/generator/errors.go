package generator

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ErrorCode classifies generator failures.
type ErrorCode int

const (
	// ErrCodeUnknown represents an unknown error
	ErrCodeUnknown ErrorCode = iota
	// ErrCodeArgument covers bad sizes and invalid configuration
	ErrCodeArgument
	// ErrCodeIO covers create, write, read, compress and delete failures
	ErrCodeIO
	// ErrCodeSizeShortfall means a written file came out smaller than its target
	ErrCodeSizeShortfall
)

// String returns the name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeArgument:
		return "ArgumentError"
	case ErrCodeIO:
		return "IoFailure"
	case ErrCodeSizeShortfall:
		return "SizeShortfall"
	default:
		return "Unknown"
	}
}

// Error is a structured generator failure.
type Error struct {
	Code    ErrorCode
	Op      string // Operation that failed (e.g., "create", "write", "compress")
	Path    string // File path if applicable
	Err     error  // Underlying error
	Time    time.Time
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s operation failed on %s: %v", e.Op, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s operation failed on %s", e.Op, e.Path)
	case e.Err != nil:
		return fmt.Sprintf("%s operation failed: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s operation failed", e.Op)
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, so the Kind sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Sentinels for errors.Is checks against a category.
var (
	ErrArgumentKind  = &Error{Code: ErrCodeArgument}
	ErrIOKind        = &Error{Code: ErrCodeIO}
	ErrShortfallKind = &Error{Code: ErrCodeSizeShortfall}
)

// NewError creates a new Error
func NewError(code ErrorCode, op, path string, err error) *Error {
	return &Error{
		Code: code,
		Op:   op,
		Path: path,
		Err:  err,
		Time: time.Now(),
	}
}

// ErrArgument creates an argument error with the given message.
func ErrArgument(format string, args ...interface{}) *Error {
	return NewError(ErrCodeArgument, "parse", "", errors.Errorf(format, args...))
}

// ErrIO creates an I/O failure for op on path.
func ErrIO(op, path string, err error) *Error {
	return NewError(ErrCodeIO, op, path, errors.WithStack(err))
}

// ErrSizeShortfall reports that path holds got bytes instead of at least want.
func ErrSizeShortfall(path string, want, got uint64) *Error {
	err := errors.Errorf("couldn't create a file of %d bytes, %d bytes have been created", want, got)
	return NewError(ErrCodeSizeShortfall, "verify", path, err).
		WithContext("target_bytes", want).
		WithContext("actual_bytes", got)
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeUnknown
}

// CauseOf returns the root cause of an error by unwrapping all layers.
func CauseOf(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Err != nil {
		return errors.Cause(e.Err)
	}
	return errors.Cause(err)
}
