package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
)

var (
	searchKind        string
	searchLibrary     string
	searchJSON        bool
	searchInteractive bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "",
		"filter by kind: agent, skill, command, guide")
	searchCmd.Flags().StringVar(&searchLibrary, "library", "",
		"filter by library name")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output in JSON format")
	searchCmd.Flags().BoolVarP(&searchInteractive, "interactive", "i", false,
		"pick a result with a fuzzy finder")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for documents across libraries",
	Long: `Search for documents across the local library and every registered
remote library.

The search is case-insensitive and matches against names and descriptions.
Results are sorted by match quality: exact name matches first, then prefix
matches, then substring matches, then description-only matches.

If no query is provided, all documents are listed (subject to filters).`,
	Example: `  # Search for documents containing "deploy"
  promptly search deploy

  # Search for skills only
  promptly search --kind skill

  # Pick a result interactively
  promptly search -i

  # Output as JSON
  promptly search deploy --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(_ *cobra.Command, args []string) error {
	return runSearchWithWriter(os.Stdout, args)
}

// runSearchWithWriter allows injecting a writer for testing.
func runSearchWithWriter(w io.Writer, args []string) error {
	var query string
	if len(args) > 0 {
		query = args[0]
	}

	if searchKind != "" && !document.ValidKind(searchKind) {
		return errors.NewUserError(
			errors.Newf("invalid kind %q", searchKind),
			"Valid kinds: agent, skill, command, guide")
	}

	docs, err := collectDocuments()
	if err != nil {
		return errors.Wrap(err, "scanning libraries")
	}

	results := document.Search(docs, query, document.SearchOptions{
		Kind:    document.Kind(searchKind),
		Library: searchLibrary,
	})

	if searchInteractive {
		return runInteractiveSearch(w, results)
	}
	if searchJSON {
		return outputSearchJSON(w, results)
	}
	return outputSearchTabular(w, results)
}

func outputSearchJSON(w io.Writer, docs []*document.Document) error {
	if docs == nil {
		docs = []*document.Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(docs), "encoding output")
}

func outputSearchTabular(w io.Writer, docs []*document.Document) error {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sKIND%s\t%sLIBRARY%s\t%sNAME%s\t%sDESCRIPTION%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s%s%s\t%s%s%s\n",
			d.Kind,
			d.Library,
			colorGreen, d.Name, colorReset,
			colorGray, truncate(d.Description(), 50), colorReset)
	}

	return errors.Wrap(tw.Flush(), "flushing output")
}
