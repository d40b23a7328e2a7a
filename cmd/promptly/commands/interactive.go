package commands

import (
	"fmt"
	"io"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
)

func runInteractiveSearch(w io.Writer, docs []*document.Document) error {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		docs,
		func(i int) string {
			return fmt.Sprintf("%s: %s (%s)", docs[i].Kind, docs[i].Name, docs[i].Library)
		},
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			d := docs[i]
			return fmt.Sprintf("Kind: %s\nLibrary: %s\nPath: %s\n\nDescription:\n%s",
				d.Kind,
				d.Library,
				d.Path,
				d.Description(),
			)
		}),
	)

	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive search failed")
	}

	d := docs[idx]
	fmt.Fprintf(w, "Selected: %s (%s)\n", d.Name, d.Kind)
	fmt.Fprintf(w, "Library: %s\n", d.Library)
	fmt.Fprintf(w, "Path: %s\n", d.Path)
	if desc := d.Description(); desc != "" {
		fmt.Fprintf(w, "Description: %s\n", desc)
	}

	return nil
}
