package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/cli/prompt"
	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/editor"
	"github.com/promptly-sh/promptly/internal/errors"
)

var editKind string

func init() {
	editCmd.Flags().StringVarP(&editKind, "kind", "k", "",
		"restrict lookup to a kind: agent, skill, command, guide")
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a document in your editor",
	Long: `Open a document in the editor named by $EDITOR (falling back to
$VISUAL, then nano, then vi).

When the name matches more than one document, an interactive prompt asks
which to open.`,
	Example: `  # Edit an agent
  promptly edit code-reviewer

  # Edit a specific kind
  promptly edit deploy --kind command

  See Also: promptly show, promptly init`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(_ *cobra.Command, args []string) error {
	return runEditWith(args[0], prompt.NewSelector(), editor.Open, os.Stdout)
}

// runEditWith allows injecting the selector and editor for testing.
func runEditWith(name string, selector *prompt.Selector, open func(string) error, w io.Writer) error {
	if editKind != "" && !document.ValidKind(editKind) {
		return errors.NewUserError(
			errors.Newf("invalid kind %q", editKind),
			"Valid kinds: agent, skill, command, guide")
	}

	docs, err := collectDocuments()
	if err != nil {
		return err
	}

	matches := document.FindByName(docs, name, document.Kind(editKind))
	if len(matches) == 0 {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrNotFound, "%q", name),
			"Run 'promptly list' to see available documents")
	}

	d, err := selector.SelectDocument(name, matches)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			return nil
		}
		return err
	}

	root, err := libraryRootFor(d)
	if err != nil {
		return err
	}
	path := filepath.Join(root, filepath.FromSlash(d.Path))

	fmt.Fprintf(w, "Opening %s\n", path)
	return open(path)
}
