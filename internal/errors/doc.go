// Package errors provides error handling conventions for the promptly CLI.
//
// It is a thin facade over github.com/cockroachdb/errors that adds the
// sentinels and exit-code machinery the CLI needs. Importing this package
// instead of the library keeps wrapping, sentinel checks, and exit handling
// in one place.
//
// # Sentinel Errors
//
// Sentinels let callers test for specific conditions with [Is]:
//
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle missing document
//	}
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed
//   - ExitUser (1): user error (bad input, invalid document, config)
//   - ExitSystem (2): system error (I/O, permissions, missing git)
//
// # ExitError
//
// [ExitError] carries an exit code and an optional suggestion to print
// before exiting. The root command unwraps it with [As]:
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
