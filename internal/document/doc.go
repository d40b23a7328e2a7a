// Package document defines promptly's core model: Markdown documents with
// optional YAML frontmatter, organized in a prompt library.
//
// A library is a directory tree with kind-specific conventions:
//
//	agents/<name>.md          agent definitions (frontmatter optional)
//	skills/<name>/SKILL.md    skill guides (frontmatter required)
//	commands/<path>.md        slash commands (frontmatter optional,
//	                          nested directories namespace the name)
//	**/*.md                   anything else is a guide
//
// The package provides parsing ([Parser]), discovery ([Scanner]), and
// query helpers ([Lookup], [Search]) over that layout. The host
// application that ultimately loads these documents at runtime is outside
// promptly's control; promptly only reads, checks, and writes the files.
package document
