package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/promptly-sh/promptly/internal/paths"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPlatform indicates an unrecognized platform name.
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// PlatformError reports an invalid platform name in the config.
type PlatformError struct {
	Platform string
	Err      error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("%v: %q (valid: %s)", e.Err, e.Platform, strings.Join(paths.Platforms(), ", "))
}

func (e *PlatformError) Unwrap() error { return e.Err }

// PathError reports a malformed path value in the config.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %v: %q", e.Field, e.Err, e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }

// Validate checks a Config. Returns nil when valid, otherwise all problems
// found.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	for _, platform := range cfg.DefaultPlatforms {
		if !paths.ValidPlatform(platform) {
			errs = append(errs, &PlatformError{Platform: platform, Err: ErrInvalidPlatform})
		}
	}

	if cfg.LibraryDir != "" {
		if err := validatePath(cfg.LibraryDir); err != nil {
			errs = append(errs, &PathError{Field: "library_dir", Path: cfg.LibraryDir, Err: err})
		}
	}

	for name, lib := range cfg.Libraries {
		if lib.Path != "" {
			if err := validatePath(lib.Path); err != nil {
				errs = append(errs, &PathError{Field: "libraries." + name + ".path", Path: lib.Path, Err: err})
			}
		}
	}

	return errs
}

// validatePath checks that a path string is syntactically sound. It does
// not require the path to exist.
func validatePath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}
	return nil
}
