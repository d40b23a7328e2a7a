package repo

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/lint"
	"github.com/promptly-sh/promptly/internal/repo"
)

var nameFlag string

func init() {
	addCmd.Flags().StringVar(&nameFlag, "name", "", "custom name for the library")
	Cmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a library source",
	Long: `Add a Git repository as a remote prompt library.

The repository is shallow cloned to the local cache. The library name is
derived from the URL unless overridden with --name. After cloning, the
library is linted and warnings are printed; lint problems never abort
the add.`,
	Example: `  # Add from GitHub
  promptly repo add https://github.com/example/community-prompts.git

  # Add with custom name
  promptly repo add https://github.com/example/prompts.git --name team

  # Add from private repo (SSH)
  promptly repo add git@github.com:org/private-prompts.git`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func runAdd(_ *cobra.Command, args []string) error {
	return runAddWithIO(args, os.Stdout)
}

// runAddWithIO allows injecting a writer for testing.
func runAddWithIO(args []string, w io.Writer) error {
	url := args[0]

	manager := repo.NewManager(config.DefaultConfigPath())

	var opts []repo.AddOption
	if nameFlag != "" {
		opts = append(opts, repo.WithName(nameFlag))
	}

	lib, err := manager.Add(url, opts...)
	if err != nil {
		return handleAddError(err)
	}

	fmt.Fprintf(w, "✓ Library '%s' added from %s\n", lib.Name, url)
	fmt.Fprintf(w, "  Cached at: %s\n", lib.Path)

	printLintWarnings(w, lib)
	return nil
}

// printLintWarnings lints the freshly cloned library and reports problems
// without failing the add.
func printLintWarnings(w io.Writer, lib *config.LibraryConfig) {
	result, err := lint.New().Library(lib.Path, lib.Name)
	if err != nil || result == nil {
		return
	}

	issues := append(result.Errors(), result.Warnings()...)
	if len(issues) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "⚠ Lint warnings:")
	for _, issue := range issues {
		fmt.Fprintf(w, "  %s: %s\n", issue.Path, issue.Message)
	}
}

// handleAddError returns a user-friendly error for known failure modes.
func handleAddError(err error) error {
	switch {
	case errors.Is(err, repo.ErrInvalidURL):
		return errors.NewUserError(err, "Provide an https:// or git@ URL")
	case errors.Is(err, repo.ErrNameCollision):
		return errors.NewUserError(err, "Pick a different name with --name")
	case errors.Is(err, repo.ErrInvalidName):
		return errors.NewUserError(err, "Names use lowercase letters, digits, and hyphens")
	default:
		return err
	}
}
