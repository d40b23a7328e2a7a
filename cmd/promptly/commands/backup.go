package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/backup"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/paths"
)

func init() {
	backupCmd.AddCommand(backupListCmd)
	backupCmd.AddCommand(backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage snapshots of installed documents",
	Long: `Manage the snapshots promptly takes before overwriting or removing
installed documents.

Snapshots are created automatically by install and remove. Old snapshots
are pruned, keeping the most recent ten per platform.`,
	Example: `  # List snapshots for a platform
  promptly backup list claude

  # Restore a snapshot
  promptly backup restore claude 20260830T120000000

  See Also: promptly install, promptly remove`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list <platform>",
	Short: "List snapshots for a platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return runBackupList(args[0], os.Stdout)
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <platform> <id>",
	Short: "Restore a snapshot",
	Long: `Restore every file in a snapshot to its original location.

Snapshot contents are hash-verified before anything is written back.`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return runBackupRestore(args[0], args[1], os.Stdout)
	},
}

// runBackupList allows injecting a writer for testing.
func runBackupList(platform string, w io.Writer) error {
	if !paths.ValidPlatform(platform) {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrUnknownPlatform, "%q", platform),
			"Run 'promptly --help' to see valid platforms")
	}

	manifests, err := backup.NewManager().List(platform)
	if err != nil {
		return errors.Wrap(err, "listing snapshots")
	}

	if len(manifests) == 0 {
		fmt.Fprintf(w, "No snapshots for %s.\n", platform)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sID%s\t%sCREATED%s\t%sFILES%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)
	for _, m := range manifests {
		fmt.Fprintf(tw, "%s\t%s\t%d\n",
			m.ID, m.CreatedAt.Format("2006-01-02 15:04:05"), len(m.Files))
	}
	return errors.Wrap(tw.Flush(), "flushing output")
}

// runBackupRestore allows injecting a writer for testing.
func runBackupRestore(platform, id string, w io.Writer) error {
	if err := backup.NewManager().Restore(platform, id); err != nil {
		if errors.Is(err, backup.ErrNotFound) {
			return errors.NewUserError(err,
				"Run 'promptly backup list "+platform+"' to see snapshots")
		}
		return errors.NewSystemError(err, "Check file permissions on the target paths")
	}

	fmt.Fprintf(w, "%s✓%s Restored snapshot %s for %s\n", colorGreen, colorReset, id, platform)
	return nil
}
