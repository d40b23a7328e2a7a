// Package paths resolves the directories promptly reads and writes:
// its own XDG-compliant config/cache homes, the layout of a prompt
// library, and the configuration directories of the AI assistant hosts
// it installs documents into.
//
// # XDG Base Directories
//
// promptly's own state follows the XDG Base Directory Specification via
// github.com/adrg/xdg: configuration under ConfigHome, cached library
// clones under CacheHome.
//
// # Host Platform Directories
//
// Each supported host keeps its documents in a different place:
//
//	| Platform | Global config       | Instructions |
//	|----------|---------------------|--------------|
//	| claude   | ~/.claude/          | CLAUDE.md    |
//	| opencode | ~/.config/opencode/ | AGENTS.md    |
//	| codex    | ~/.codex/           | AGENTS.md    |
//	| gemini   | ~/.gemini/          | GEMINI.md    |
//
// Functions taking a platform name return an empty string for unknown
// platforms; use [ValidPlatform] to check first.
package paths
