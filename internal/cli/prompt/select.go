// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
)

// Sentinel errors for document selection.
var (
	ErrNoDocuments        = errors.New("no documents to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive document selection.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom streams for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// SelectDocument prompts the user to choose from the matches for a
// query. A single match is returned without prompting; pressing enter
// picks the first option; EOF cancels.
func (s *Selector) SelectDocument(query string, docs []*document.Document) (*document.Document, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}
	if len(docs) == 1 {
		return docs[0], nil
	}

	fmt.Fprintf(s.writer, "Multiple documents match %q:\n", query)
	for i, d := range docs {
		library := d.Library
		if library == "" {
			library = "local"
		}
		fmt.Fprintf(s.writer, "  [%d] %s/%s (%s)\n", i+1, d.Kind, d.Name, library)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return docs[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}
	if selection < 1 || selection > len(docs) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range 1-%d", selection, len(docs))
	}

	return docs[selection-1], nil
}
