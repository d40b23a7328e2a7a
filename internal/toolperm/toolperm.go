// Package toolperm parses and validates the allowed-tools permission syntax
// used in document frontmatter.
//
// A permission list is a space-delimited string of tokens, each either a
// bare tool name or a tool name with a scope: "Read Write Bash(git:*)".
// Tool names are PascalCase.
package toolperm

import (
	"regexp"
	"strings"
)

// Permission represents a parsed tool permission.
type Permission struct {
	// Name is the tool name (e.g., "Read", "Bash", "Write").
	Name string

	// Scope is the optional scope, e.g. "git:*" from "Bash(git:*)".
	// Empty when no scope is specified.
	Scope string
}

// String returns the permission in its canonical string form.
func (p Permission) String() string {
	if p.Scope == "" {
		return p.Name
	}
	return p.Name + "(" + p.Scope + ")"
}

// tokenRegex matches ToolName or ToolName(scope). Group 1 is the name,
// group 2 the scope without parentheses.
var tokenRegex = regexp.MustCompile(`^([A-Z][a-zA-Z0-9]*)(?:\(([^)]+)\))?$`)

// knownTools are the tool names the supported hosts accept in
// allowed-tools lists.
var knownTools = map[string]struct{}{
	"Read":         {},
	"Write":        {},
	"Edit":         {},
	"MultiEdit":    {},
	"NotebookEdit": {},
	"Bash":         {},
	"Glob":         {},
	"Grep":         {},
	"WebFetch":     {},
	"WebSearch":    {},
	"Task":         {},
	"TodoWrite":    {},
}

// Known reports whether name is a recognized tool name. Unrecognized
// names parse fine; hosts may reject them.
func Known(name string) bool {
	_, ok := knownTools[name]
	return ok
}

// Parser handles tool permission string parsing.
type Parser struct{}

// New creates a new Parser.
func New() *Parser {
	return &Parser{}
}

// Parse splits a space-delimited allowed-tools string into permissions.
// Empty input yields an empty slice.
func (p *Parser) Parse(allowedTools string) ([]Permission, error) {
	allowedTools = strings.TrimSpace(allowedTools)
	if allowedTools == "" {
		return []Permission{}, nil
	}

	tokens := strings.Fields(allowedTools)
	perms := make([]Permission, 0, len(tokens))
	for _, token := range tokens {
		perm, err := p.ParseSingle(token)
		if err != nil {
			return nil, err
		}
		perms = append(perms, perm)
	}

	return perms, nil
}

// ParseSingle parses one permission token.
func (p *Parser) ParseSingle(token string) (Permission, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Permission{}, &ToolPermError{Token: token, Message: "empty tool permission"}
	}

	matches := tokenRegex.FindStringSubmatch(token)
	if matches == nil {
		return Permission{}, &ToolPermError{
			Token:   token,
			Message: "tool name must be PascalCase (start with an uppercase letter, e.g. Read, Write, Bash)",
		}
	}

	return Permission{Name: matches[1], Scope: matches[2]}, nil
}

// Format converts permissions back to the space-delimited string form.
func (p *Parser) Format(perms []Permission) string {
	if len(perms) == 0 {
		return ""
	}
	parts := make([]string, len(perms))
	for i, perm := range perms {
		parts[i] = perm.String()
	}
	return strings.Join(parts, " ")
}
