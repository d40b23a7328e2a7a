// Package platform defines the adapter contract for install targets.
//
// A Platform knows where a host assistant keeps its agents, skills, and
// slash commands, and how to translate a library document into the
// host's on-disk format. Adapters live in subpackages (claude, gemini)
// and register themselves in a Registry for lookup by name.
//
// Detection helpers answer which hosts are present on this machine by
// probing their global configuration directories.
package platform
