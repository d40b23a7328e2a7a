// Package lint checks prompt documents for structural and editorial
// problems: missing or malformed frontmatter fields, name/path
// mismatches, empty bodies, and Markdown cross-references that do not
// resolve within the library.
package lint
