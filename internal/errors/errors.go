package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Re-exported constructors and predicates from cockroachdb/errors so callers
// only import this package.
var (
	New         = errors.New
	Newf        = errors.Newf
	Wrap        = errors.Wrap
	Wrapf       = errors.Wrapf
	Is          = errors.Is
	As          = errors.As
	Unwrap      = errors.Unwrap
	WithDetail  = errors.WithDetail
	WithDetailf = errors.WithDetailf
	Join        = errors.Join
)

// Exit codes returned to the operating system.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, document, config).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, missing tools).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrMissingName indicates a required name field is missing.
	ErrMissingName = errors.New("name is required")

	// ErrNotFound indicates the requested document was not found.
	ErrNotFound = errors.New("document not found")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidToolSyntax indicates a malformed tool permission string.
	ErrInvalidToolSyntax = errors.New("invalid tool syntax")

	// ErrUnknownPlatform indicates an unrecognized platform name.
	ErrUnknownPlatform = errors.New("unknown platform")
)

// ExitError wraps an error with an exit code and optional suggestion.
// It supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable hint printed after the error.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: suggestion}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{Err: err, Code: ExitSystem, Suggestion: suggestion}
}

// NewConfigError creates an ExitError for a broken configuration with the
// standard recovery suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{Err: err, Code: ExitUser, Suggestion: "Run: promptly doctor"}
}

// Error returns the underlying error message, or a generic message when the
// underlying error is nil.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling Is and As matching.
func (e *ExitError) Unwrap() error {
	return e.Err
}
