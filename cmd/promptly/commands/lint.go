package commands

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/lint"
	"github.com/promptly-sh/promptly/internal/validator"
)

var (
	lintJSON   bool
	lintStrict bool
)

func init() {
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "output as JSON")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false,
		"enable strict checks (tool syntax, agent descriptions)")
	rootCmd.AddCommand(lintCmd)
}

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Lint a prompt library",
	Long: `Lint every document in a prompt library: naming rules, required
fields, body structure, and relative links between documents.

With no argument the configured library root is linted. Errors exit with
code 1; warnings alone exit with code 0.`,
	Example: `  # Lint the local library
  promptly lint

  # Lint another directory, strictly
  promptly lint ~/prompts --strict

  # Machine-readable output
  promptly lint --json

  See Also: promptly validate, promptly watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func runLint(_ *cobra.Command, args []string) error {
	root := libraryRoot()
	if len(args) > 0 {
		root = args[0]
	}
	return runLintWithWriter(root, os.Stdout)
}

// runLintWithWriter allows injecting a writer for testing.
func runLintWithWriter(root string, w io.Writer) error {
	linter := lint.New(lint.WithStrict(lintStrict))

	result, err := linter.Library(root, localLibrary)
	if err != nil {
		return errors.Wrapf(err, "linting %s", root)
	}

	format := validator.FormatText
	if lintJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(w, format).Report(result); err != nil {
		return err
	}

	if result.HasErrors() {
		return errors.NewExitError(errors.New("lint found errors"), errors.ExitUser)
	}
	return nil
}
