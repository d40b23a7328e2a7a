// Package claude adapts prompt documents to Claude Code's layout.
//
// Claude Code consumes the library's native format directly: Markdown
// with YAML frontmatter under ~/.claude/agents, ~/.claude/commands, and
// ~/.claude/skills/<name>/SKILL.md. Install is therefore a faithful
// copy; namespaced command names map to nested directories.
package claude
