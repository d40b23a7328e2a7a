package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
)

var (
	listKind    string
	listLibrary string
	listJSON    bool
)

func init() {
	listCmd.Flags().StringVarP(&listKind, "kind", "k", "",
		"filter by kind: agent, skill, command, guide")
	listCmd.Flags().StringVar(&listLibrary, "library", "",
		"filter by library name")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents in the library",
	Long: `List the documents in the local library and every registered remote
library. Use --kind to restrict the output to a single document kind.`,
	Example: `  # List every document
  promptly list

  # List only skills
  promptly list --kind skill

  # Output as JSON
  promptly list --json

  See Also: promptly search, promptly show`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(_ *cobra.Command, _ []string) error {
	return runListWithWriter(os.Stdout)
}

// runListWithWriter allows injecting a writer for testing.
func runListWithWriter(w io.Writer) error {
	if listKind != "" && !document.ValidKind(listKind) {
		return errors.NewUserError(
			errors.Newf("invalid kind %q", listKind),
			"Valid kinds: agent, skill, command, guide")
	}

	docs, err := collectDocuments()
	if err != nil {
		return errors.Wrap(err, "listing documents")
	}

	docs = document.Search(docs, "", document.SearchOptions{
		Kind:    document.Kind(listKind),
		Library: listLibrary,
	})

	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Kind != docs[j].Kind {
			return docs[i].Kind < docs[j].Kind
		}
		return docs[i].Name < docs[j].Name
	})

	if listJSON {
		return outputListJSON(w, docs)
	}
	return outputListTabular(w, docs)
}

func outputListJSON(w io.Writer, docs []*document.Document) error {
	if docs == nil {
		docs = []*document.Document{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(docs), "encoding output")
}

func outputListTabular(w io.Writer, docs []*document.Document) error {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No documents found.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Scaffold one with:")
		fmt.Fprintln(w, "  promptly init agent <name>")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sKIND%s\t%sNAME%s\t%sLIBRARY%s\t%sDESCRIPTION%s\n",
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset,
		colorBold, colorReset)

	for _, d := range docs {
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\t%s\n",
			colorCyan, d.Kind, colorReset,
			colorGreen, d.Name, colorReset,
			d.Library,
			truncate(d.Description(), 60))
	}

	return errors.Wrap(tw.Flush(), "flushing output")
}
