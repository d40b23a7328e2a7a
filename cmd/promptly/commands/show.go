package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
)

var (
	showKind   string
	showJSON   bool
	showRender bool
)

func init() {
	showCmd.Flags().StringVarP(&showKind, "kind", "k", "",
		"restrict lookup to a kind: agent, skill, command, guide")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	showCmd.Flags().BoolVar(&showRender, "render", false,
		"render the Markdown body for the terminal")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Display a document",
	Long: `Display a document from the library, including its metadata and body.

When the name matches documents of more than one kind, use --kind to pick
one. With --render the Markdown body is styled for the terminal.`,
	Example: `  # Show an agent
  promptly show code-reviewer

  # Show a specific kind
  promptly show deploy --kind command

  # Rendered output
  promptly show code-reviewer --render

  See Also: promptly list, promptly edit`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(_ *cobra.Command, args []string) error {
	return runShowWithWriter(args[0], os.Stdout)
}

// showDocumentJSON is the JSON output shape, with the body included.
type showDocumentJSON struct {
	Kind    document.Kind     `json:"kind"`
	Name    string            `json:"name"`
	Path    string            `json:"path"`
	Library string            `json:"library,omitempty"`
	Meta    document.Metadata `json:"meta"`
	Body    string            `json:"body"`
}

// runShowWithWriter allows injecting a writer for testing.
func runShowWithWriter(name string, w io.Writer) error {
	d, err := findDocument(name, showKind)
	if err != nil {
		return err
	}
	if err := loadBody(d); err != nil {
		return errors.Wrapf(err, "reading %s", d.Path)
	}

	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(showDocumentJSON{
			Kind:    d.Kind,
			Name:    d.Name,
			Path:    d.Path,
			Library: d.Library,
			Meta:    d.Meta,
			Body:    d.Body,
		}), "encoding output")
	}

	fmt.Fprintf(w, "%s%s%s %s(%s, %s)%s\n",
		colorBold, d.Name, colorReset,
		colorGray, d.Kind, d.Library, colorReset)
	if desc := d.Description(); desc != "" {
		fmt.Fprintf(w, "%s\n", desc)
	}
	if d.Meta.AllowedTools != "" {
		fmt.Fprintf(w, "allowed-tools: %s\n", d.Meta.AllowedTools)
	}
	fmt.Fprintf(w, "%s%s%s\n\n", colorGray, d.Path, colorReset)

	if showRender {
		rendered, err := renderMarkdown(d.Body)
		if err != nil {
			return errors.Wrap(err, "rendering document")
		}
		fmt.Fprint(w, rendered)
		return nil
	}

	fmt.Fprintln(w, d.Body)
	return nil
}

// renderMarkdown styles a Markdown body for terminal display.
func renderMarkdown(body string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return r.Render(body)
}

// findDocument looks up a single document by name, optionally restricted to
// a kind. An ambiguous name is an error listing the candidates.
func findDocument(name, kind string) (*document.Document, error) {
	if kind != "" && !document.ValidKind(kind) {
		return nil, errors.NewUserError(
			errors.Newf("invalid kind %q", kind),
			"Valid kinds: agent, skill, command, guide")
	}

	docs, err := collectDocuments()
	if err != nil {
		return nil, err
	}

	matches := document.FindByName(docs, name, document.Kind(kind))
	switch len(matches) {
	case 0:
		return nil, errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "%q", name),
			"Run 'promptly list' to see available documents")
	case 1:
		return matches[0], nil
	}

	var candidates []string
	for _, m := range matches {
		candidates = append(candidates, fmt.Sprintf("%s/%s (%s)", m.Kind, m.Name, m.Library))
	}
	return nil, errors.NewUserError(
		errors.Newf("%q matches multiple documents: %s", name, strings.Join(candidates, ", ")),
		"Disambiguate with --kind")
}
