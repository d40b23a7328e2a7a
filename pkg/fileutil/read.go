package fileutil

import (
	"io"
	"os"

	"github.com/promptly-sh/promptly/internal/errors"
)

// MaxDocumentSize bounds how much of a document we will read (1MB).
// Prompt documents are prose; anything past this is not one.
const MaxDocumentSize = 1 << 20

// ErrFileTooLarge indicates that a file exceeded MaxDocumentSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxDocumentSize)

// ReadFileBounded reads a file up to MaxDocumentSize and errors beyond it.
func ReadFileBounded(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast when stat already shows an oversized file.
	if info, err := f.Stat(); err == nil && info.Size() > MaxDocumentSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxDocumentSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
