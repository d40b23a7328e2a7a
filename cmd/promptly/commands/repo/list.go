package repo

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/repo"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	Cmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered library sources",
	Long:  `List every Git repository registered as a remote prompt library.`,
	Example: `  # List all libraries
  promptly repo list

  # Output as JSON
  promptly repo list --json

  See Also:
    promptly repo add    - Add a library source
    promptly repo remove - Remove a library`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// libraryJSON represents a library in JSON output format.
type libraryJSON struct {
	Name    string    `json:"name"`
	URL     string    `json:"url"`
	Path    string    `json:"path"`
	AddedAt time.Time `json:"added_at"`
}

func runList(_ *cobra.Command, _ []string) error {
	return runListWithWriter(os.Stdout, config.DefaultConfigPath())
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer, configPath string) error {
	mgr := repo.NewManager(configPath)

	libs, err := mgr.List()
	if err != nil {
		return errors.Wrap(err, "listing libraries")
	}

	if listJSON {
		return outputListJSON(w, libs)
	}
	return outputListTabular(w, libs)
}

func outputListJSON(w io.Writer, libs []config.LibraryConfig) error {
	output := make([]libraryJSON, len(libs))
	for i, l := range libs {
		output[i] = libraryJSON{
			Name:    l.Name,
			URL:     l.URL,
			Path:    l.Path,
			AddedAt: l.AddedAt,
		}
	}

	sort.Slice(output, func(i, j int) bool {
		return output[i].Name < output[j].Name
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(output), "encoding output")
}

// ANSI color codes.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

func outputListTabular(w io.Writer, libs []config.LibraryConfig) error {
	if len(libs) == 0 {
		fmt.Fprintln(w, "No libraries registered.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Add a library with:")
		fmt.Fprintln(w, "  promptly repo add <url>")
		return nil
	}

	sort.Slice(libs, func(i, j int) bool {
		return libs[i].Name < libs[j].Name
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sNAME%s\t%sURL%s\t%sADDED%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, l := range libs {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%s%s%s\n",
			colorGreen, l.Name, colorReset,
			l.URL,
			colorGray, l.AddedAt.Format("2006-01-02"), colorReset)
	}

	return errors.Wrap(tw.Flush(), "flushing output")
}
