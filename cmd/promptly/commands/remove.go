package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/backup"
	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/install"
	"github.com/promptly-sh/promptly/internal/platform"
)

var removeKind string

func init() {
	removeCmd.Flags().StringVarP(&removeKind, "kind", "k", "",
		"kind of the installed document: agent, skill, command")
	rootCmd.AddCommand(removeCmd)
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an installed document from platforms",
	Long: `Remove a previously installed document from the configuration
directories of the target platforms.

Removal is idempotent: platforms where the document is not installed are
skipped. The library copy is never touched.`,
	Example: `  # Remove from all default platforms
  promptly remove code-reviewer --kind agent

  # Remove from one platform
  promptly remove deploy --kind command --platform claude

  See Also: promptly install`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func runRemove(_ *cobra.Command, args []string) error {
	reg := defaultRegistry()
	installer := install.New(reg, install.WithBackup(backup.NewManager()))
	return runRemoveWith(args[0], reg, installer, os.Stdout)
}

// runRemoveWith allows injecting the registry and installer for testing.
func runRemoveWith(name string, reg *platform.Registry, installer *install.Installer, w io.Writer) error {
	kind := removeKind
	if kind == "" {
		// Fall back to the library to infer the kind.
		d, err := findDocument(name, "")
		if err != nil {
			return errors.NewUserError(
				errors.Wrapf(err, "cannot infer kind for %q", name),
				"Specify the kind with --kind")
		}
		kind = string(d.Kind)
	}
	if !document.ValidKind(kind) {
		return errors.NewUserError(
			errors.Newf("invalid kind %q", kind),
			"Valid kinds: agent, skill, command")
	}

	results := installer.Uninstall(document.Kind(kind), name, targetPlatforms(reg))
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s✗%s %s: %v\n", colorYellow, colorReset, r.Platform, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s✓%s Removed %s from %s\n", colorGreen, colorReset, name, r.Platform)
	}

	if install.Failed(results) {
		return errors.NewExitError(errors.New("remove failed on some platforms"), errors.ExitUser)
	}
	return nil
}
