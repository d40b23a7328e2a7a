package document

import (
	"path"
	"strings"
)

// Kind identifies what a document is for.
type Kind string

// Document kinds.
const (
	KindAgent   Kind = "agent"
	KindSkill   Kind = "skill"
	KindCommand Kind = "command"
	KindGuide   Kind = "guide"
)

// Kinds returns all document kinds in display order.
func Kinds() []Kind {
	return []Kind{KindAgent, KindSkill, KindCommand, KindGuide}
}

// ValidKind returns true for a recognized kind name.
func ValidKind(k string) bool {
	switch Kind(k) {
	case KindAgent, KindSkill, KindCommand, KindGuide:
		return true
	}
	return false
}

// Metadata holds the recognized frontmatter fields of a document.
type Metadata struct {
	// Name is the document's identifier. For skills it is required and
	// must match the containing directory.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Description explains what the document is for. Required for skills.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// AllowedTools is the space-delimited tool permission list.
	AllowedTools string `yaml:"allowed-tools,omitempty" json:"allowed_tools,omitempty"`

	// Model optionally pins the model the host should use.
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	// License is an SPDX identifier.
	License string `yaml:"license,omitempty" json:"license,omitempty"`

	// Compatibility lists host platforms the document is written for.
	Compatibility []string `yaml:"compatibility,omitempty" json:"compatibility,omitempty"`

	// Extra carries free-form key/value metadata (author, version, ...).
	Extra map[string]string `yaml:"metadata,omitempty" json:"metadata,omitempty"`

	// Rest collects frontmatter keys promptly does not recognize
	// (argument-hint, host extensions). They survive a rewrite untouched
	// and are never validated.
	Rest map[string]any `yaml:",inline" json:"-"`
}

// Document is one Markdown file in a prompt library.
type Document struct {
	// Kind is the document's role in the library.
	Kind Kind `json:"kind"`

	// Name identifies the document within its kind. Derived from the path
	// unless frontmatter overrides it.
	Name string `json:"name"`

	// Path is the slash-separated path relative to the library root.
	Path string `json:"path"`

	// Library is the name of the library the document came from
	// ("local" or a registered remote library name).
	Library string `json:"library,omitempty"`

	// Meta holds the parsed frontmatter.
	Meta Metadata `json:"meta"`

	// Body is the Markdown content after the frontmatter. Scanners leave
	// it empty; parsers fill it.
	Body string `json:"-"`
}

// Title returns the first H1 heading of the body, falling back to the
// metadata name, then the path-derived name.
func (d *Document) Title() string {
	for _, line := range strings.Split(d.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(trimmed, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	if d.Meta.Name != "" {
		return d.Meta.Name
	}
	return d.Name
}

// Description returns the frontmatter description.
func (d *Document) Description() string {
	return d.Meta.Description
}

// KindForPath classifies a library-relative slash path per the layout
// conventions. Non-Markdown files return "" and false.
func KindForPath(rel string) (Kind, bool) {
	rel = path.Clean(rel)
	if !strings.HasSuffix(rel, ".md") {
		return "", false
	}

	parts := strings.Split(rel, "/")
	switch {
	case parts[0] == "agents" && len(parts) == 2:
		return KindAgent, true
	case parts[0] == "skills" && len(parts) == 3 && parts[2] == "SKILL.md":
		return KindSkill, true
	case parts[0] == "commands" && len(parts) >= 2:
		return KindCommand, true
	}
	return KindGuide, true
}

// NameForPath derives the document name from its library-relative path.
//
//	agents/reviewer.md        -> reviewer
//	skills/deploy/SKILL.md    -> deploy
//	commands/git/commit.md    -> git:commit
//	docs/style.md             -> docs/style
func NameForPath(kind Kind, rel string) string {
	rel = path.Clean(rel)
	switch kind {
	case KindAgent:
		return strings.TrimSuffix(path.Base(rel), ".md")
	case KindSkill:
		return path.Base(path.Dir(rel))
	case KindCommand:
		sub := strings.TrimPrefix(rel, "commands/")
		sub = strings.TrimSuffix(sub, ".md")
		return strings.ReplaceAll(sub, "/", ":")
	default:
		return strings.TrimSuffix(rel, ".md")
	}
}
