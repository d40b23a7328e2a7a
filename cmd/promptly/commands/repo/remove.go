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
	Cmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a library source",
	Long: `Remove a remote library from the registered sources.

This removes both the configuration entry and the cached clone.`,
	Example: `  promptly repo remove community-prompts`,
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func runRemove(_ *cobra.Command, args []string) error {
	return runRemoveWithIO(args[0], os.Stdout)
}

// runRemoveWithIO allows injecting a writer for testing.
func runRemoveWithIO(name string, w io.Writer) error {
	manager := repo.NewManager(config.DefaultConfigPath())

	if err := manager.Remove(name); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return errors.NewUserError(
				errors.Newf("library %q not found", name),
				"Run: promptly repo list to see registered libraries",
			)
		}
		// Cache cleanup failure is a warning, not a fatal error
		if errors.Is(err, repo.ErrCacheCleanupFailed) {
			fmt.Fprintf(w, "✓ Library %q removed\n", name)
			fmt.Fprintf(w, "⚠ Warning: %v\n", err)
			return nil
		}
		return errors.NewSystemError(
			errors.Wrapf(err, "removing library %q", name),
			"Check file permissions on the cache directory",
		)
	}

	fmt.Fprintf(w, "✓ Library %q removed\n", name)
	return nil
}
