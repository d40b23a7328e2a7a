package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/backup"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/install"
	"github.com/promptly-sh/promptly/internal/platform"
)

var installKind string

func init() {
	installCmd.Flags().StringVarP(&installKind, "kind", "k", "",
		"restrict lookup to a kind: agent, skill, command")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Install a document into platform configuration",
	Long: `Install a document from the library into the configuration
directories of the target platforms.

The document is validated first; a document with errors is never written.
Platforms that do not support the document's kind are reported per
platform without aborting the others.`,
	Example: `  # Install into all default platforms
  promptly install code-reviewer

  # Install into one platform
  promptly install deploy --kind command --platform gemini

  See Also: promptly remove, promptly lint`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func runInstall(_ *cobra.Command, args []string) error {
	reg := defaultRegistry()
	installer := install.New(reg, install.WithBackup(backup.NewManager()))
	return runInstallWith(args[0], reg, installer, os.Stdout)
}

// runInstallWith allows injecting the registry and installer for testing.
func runInstallWith(name string, reg *platform.Registry, installer *install.Installer, w io.Writer) error {
	d, err := findDocument(name, installKind)
	if err != nil {
		return err
	}
	if err := loadBody(d); err != nil {
		return errors.Wrapf(err, "reading %s", d.Path)
	}

	results, err := installer.Install(d, targetPlatforms(reg))
	if err != nil {
		if errors.Is(err, install.ErrValidationFailed) {
			return errors.NewUserError(err, "Run 'promptly validate' for details")
		}
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s✗%s %s: %v\n", colorYellow, colorReset, r.Platform, r.Err)
			continue
		}
		fmt.Fprintf(w, "%s✓%s Installed %s to %s (%s)\n",
			colorGreen, colorReset, d.Name, r.Platform, r.Path)
	}

	if install.Failed(results) {
		return errors.NewExitError(errors.New("install failed on some platforms"), errors.ExitUser)
	}
	return nil
}
