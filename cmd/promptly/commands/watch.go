package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/lint"
	"github.com/promptly-sh/promptly/internal/validator"
	"github.com/promptly-sh/promptly/internal/watch"
)

var (
	watchStrict   bool
	watchDebounce time.Duration
)

func init() {
	watchCmd.Flags().BoolVar(&watchStrict, "strict", false,
		"enable strict checks (tool syntax, agent descriptions)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond,
		"delay before re-linting after a change")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Re-lint the library on every change",
	Long: `Watch a prompt library and re-lint it whenever a file changes.

Changes are debounced so a burst of writes triggers a single lint run.
Stop with Ctrl-C.`,
	Example: `  # Watch the local library
  promptly watch

  # Watch another directory with strict checks
  promptly watch ~/prompts --strict

  See Also: promptly lint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := libraryRoot()
	if len(args) > 0 {
		root = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runWatchContext(ctx, root, os.Stdout)
}

// runWatchContext allows injecting a context and writer for testing.
func runWatchContext(ctx context.Context, root string, w io.Writer) error {
	if _, err := os.Stat(root); err != nil {
		return errors.NewUserError(
			errors.Wrapf(err, "cannot watch %s", root),
			"Run 'promptly init' to scaffold a library")
	}

	lintOnce := func() {
		fmt.Fprintf(w, "%s--- %s ---%s\n", colorGray, time.Now().Format("15:04:05"), colorReset)
		result, err := lint.New(lint.WithStrict(watchStrict)).Library(root, localLibrary)
		if err != nil {
			fmt.Fprintf(w, "lint failed: %v\n", err)
			return
		}
		if err := validator.NewReporter(w, validator.FormatText).Report(result); err != nil {
			slog.Warn("reporting lint results", "error", err)
		}
	}

	watcher := watch.New(root, lintOnce, watch.WithDebounce(watchDebounce))
	if err := watcher.Start(ctx); err != nil {
		return errors.Wrapf(err, "watching %s", root)
	}
	defer watcher.Stop()

	fmt.Fprintf(w, "Watching %s (Ctrl-C to stop)\n", root)
	lintOnce()

	<-ctx.Done()
	fmt.Fprintln(w, "\nStopped.")
	return nil
}
