package repo

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/repo"
)

func init() {
	Cmd.AddCommand(updateCmd)
}

var updateCmd = &cobra.Command{
	Use:   "update [name]",
	Short: "Update library sources",
	Long: `Update remote libraries by pulling the latest changes.

If a name is provided, only that library is updated.
If no name is provided, all libraries are updated.`,
	Example: `  # Update all libraries
  promptly repo update

  # Update a specific library
  promptly repo update community-prompts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpdate,
}

func runUpdate(_ *cobra.Command, args []string) error {
	return runUpdateWithIO(args, os.Stdout)
}

// runUpdateWithIO allows injecting a writer for testing.
func runUpdateWithIO(args []string, w io.Writer) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}

	manager := repo.NewManager(config.DefaultConfigPath())

	if name == "" {
		libs, err := manager.List()
		if err != nil {
			return errors.Wrap(err, "listing libraries")
		}
		if len(libs) == 0 {
			fmt.Fprintln(w, "No libraries registered.")
			return nil
		}
	}

	if name != "" {
		fmt.Fprintf(w, "Updating %s... ", name)
	} else {
		fmt.Fprint(w, "Updating all libraries... ")
	}

	if err := manager.Update(name); err != nil {
		fmt.Fprintln(w, "✗ failed")
		return handleUpdateError(name, err)
	}
	fmt.Fprintln(w, "✓ done")
	return nil
}

// handleUpdateError returns a user-friendly error for known failure modes.
func handleUpdateError(name string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return errors.NewUserError(
			errors.Newf("library %q not found", name),
			"Run: promptly repo list to see registered libraries",
		)
	}
	if name == "" {
		name = "libraries"
	}
	return errors.NewSystemError(
		errors.Wrapf(err, "updating %s", name),
		"Check your network connection and repository access",
	)
}
