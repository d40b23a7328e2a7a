package platform

import (
	"github.com/promptly-sh/promptly/internal/document"
)

// Platform is the contract an install target implements.
//
// Implementations must be safe for concurrent use. Path methods return
// static configuration that does not change during the lifetime of an
// adapter instance.
type Platform interface {
	// Name returns the platform identifier (claude, gemini). The name
	// must match one of the constants in the paths package.
	Name() string

	// GlobalConfigDir returns the platform's global configuration
	// directory, e.g. ~/.claude for claude.
	GlobalConfigDir() string

	// InstructionFilename returns the platform's instruction file name,
	// e.g. CLAUDE.md or GEMINI.md.
	InstructionFilename() string

	// Supports reports whether the platform can host documents of the
	// given kind.
	Supports(kind document.Kind) bool

	// Install writes the document in the platform's native format and
	// returns the path it was written to. Overwrites an existing
	// install of the same name.
	Install(d *document.Document) (string, error)

	// Uninstall removes an installed document. Removing a document
	// that is not installed is not an error.
	Uninstall(kind document.Kind, name string) error

	// List returns the documents of a kind currently installed.
	List(kind document.Kind) ([]Installed, error)

	// Get reads an installed document back in canonical form. Returns
	// errors.ErrNotFound when the document is not installed.
	Get(kind document.Kind, name string) (*document.Document, error)
}

// Installed describes one document present on a platform.
type Installed struct {
	// Kind is the document kind.
	Kind document.Kind `json:"kind"`

	// Name is the document name in canonical form (commands use
	// colon namespacing).
	Name string `json:"name"`

	// Path is the absolute path of the installed artifact.
	Path string `json:"path"`
}
