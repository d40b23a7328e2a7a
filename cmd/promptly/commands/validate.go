package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/lint"
	"github.com/promptly-sh/promptly/internal/validator"
)

var (
	validateJSON   bool
	validateStrict bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output as JSON")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false,
		"enable strict checks (tool syntax, agent descriptions)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a single document file",
	Long: `Validate one Markdown document: frontmatter syntax, naming rules,
required fields, and body structure.

The document's kind is derived from its path relative to the library root.
A file outside the library is treated by its filename alone.`,
	Example: `  # Validate a skill
  promptly validate skills/deploy/SKILL.md

  # Strict mode with JSON output
  promptly validate agents/reviewer.md --strict --json

  See Also: promptly lint`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(_ *cobra.Command, args []string) error {
	return runValidateWithWriter(args[0], os.Stdout)
}

// runValidateWithWriter allows injecting a writer for testing.
func runValidateWithWriter(file string, w io.Writer) error {
	rel, err := libraryRelPath(file)
	if err != nil {
		return err
	}

	d, err := document.NewParser().ParseFile(file, rel)
	if err != nil {
		return errors.NewUserError(err, "Fix the frontmatter and try again")
	}

	linter := lint.New(lint.WithStrict(validateStrict))
	result := linter.Document(d)

	format := validator.FormatText
	if validateJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(w, format).Report(result); err != nil {
		return err
	}

	if result.HasErrors() {
		return errors.NewExitError(errors.Newf("%s failed validation", file), errors.ExitUser)
	}
	return nil
}

// libraryRelPath converts a file argument to a slash path relative to the
// library root. Files outside the root keep only their base name, so they
// classify from the filename alone.
func libraryRelPath(file string) (string, error) {
	absFile, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Wrap(err, "resolving path")
	}
	absRoot, err := filepath.Abs(libraryRoot())
	if err != nil {
		return "", errors.Wrap(err, "resolving library root")
	}

	rel, err := filepath.Rel(absRoot, absFile)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(file), nil
	}
	return filepath.ToSlash(rel), nil
}
