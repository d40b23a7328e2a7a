package document

import (
	"slices"
	"strings"
)

// SearchOptions filters search results.
type SearchOptions struct {
	// Kind filters by document kind. Empty matches all kinds.
	Kind Kind
	// Library filters by library name. Empty matches all libraries.
	Library string
}

// Search finds documents matching the query, case-insensitively, against
// name and description. An empty query returns everything that passes the
// filters. Results are ordered by match quality: exact name, name prefix,
// name substring, description-only.
func Search(docs []*Document, query string, opts SearchOptions) []*Document {
	query = strings.ToLower(query)

	var results []*Document
	for _, d := range docs {
		if !matchesFilters(d, opts) {
			continue
		}
		if query == "" || matchesQuery(d, query) {
			results = append(results, d)
		}
	}

	slices.SortStableFunc(results, func(a, b *Document) int {
		return scoreMatch(b, query) - scoreMatch(a, query)
	})

	return results
}

func matchesFilters(d *Document, opts SearchOptions) bool {
	if opts.Kind != "" && d.Kind != opts.Kind {
		return false
	}
	if opts.Library != "" && d.Library != opts.Library {
		return false
	}
	return true
}

func matchesQuery(d *Document, query string) bool {
	name := strings.ToLower(d.Name)
	desc := strings.ToLower(d.Meta.Description)
	return strings.Contains(name, query) || strings.Contains(desc, query)
}

// scoreMatch ranks a document against the query:
// 100 exact name, 75 name prefix, 50 name substring, 25 description only.
func scoreMatch(d *Document, query string) int {
	if query == "" {
		return 0
	}

	name := strings.ToLower(d.Name)
	switch {
	case name == query:
		return 100
	case strings.HasPrefix(name, query):
		return 75
	case strings.Contains(name, query):
		return 50
	case strings.Contains(strings.ToLower(d.Meta.Description), query):
		return 25
	}
	return 0
}

// FindByName returns the documents whose name matches exactly, optionally
// restricted to a kind.
func FindByName(docs []*Document, name string, kind Kind) []*Document {
	var matches []*Document
	for _, d := range docs {
		if d.Name != name {
			continue
		}
		if kind != "" && d.Kind != kind {
			continue
		}
		matches = append(matches, d)
	}
	return matches
}
