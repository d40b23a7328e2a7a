package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// Platform identifiers for supported AI coding assistants.
const (
	PlatformClaude   = "claude"
	PlatformOpenCode = "opencode"
	PlatformCodex    = "codex"
	PlatformGemini   = "gemini"
)

// AppName is used for promptly's own config and cache directories.
const AppName = "promptly"

// platformGlobalConfigs maps platform names to their global config
// directories, relative to the user's home directory.
var platformGlobalConfigs = map[string]string{
	PlatformClaude:   ".claude",
	PlatformOpenCode: ".config/opencode",
	PlatformCodex:    ".codex",
	PlatformGemini:   ".gemini",
}

// platformInstructionFiles maps platform names to their instruction file.
var platformInstructionFiles = map[string]string{
	PlatformClaude:   "CLAUDE.md",
	PlatformOpenCode: "AGENTS.md",
	PlatformCodex:    "AGENTS.md",
	PlatformGemini:   "GEMINI.md",
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any parents. If perm is 0,
// DefaultDirPerm is used. Idempotent.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be resolved.
// Use ResolveHome when the caller needs the error.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory or ErrHomeDirNotFound.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// CacheHome returns the XDG cache home directory.
func CacheHome() string {
	return xdg.CacheHome
}

// ConfigDir returns promptly's own configuration directory:
// <ConfigHome>/promptly/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// LibraryCacheDir returns the directory holding cached clones of remote
// prompt libraries: <CacheHome>/promptly/libraries/
func LibraryCacheDir() string {
	return filepath.Join(CacheHome(), AppName, "libraries")
}

// ValidPlatform returns true if the platform name is recognized.
func ValidPlatform(platform string) bool {
	_, ok := platformGlobalConfigs[platform]
	return ok
}

// Platforms returns all supported platform identifiers.
func Platforms() []string {
	return []string{
		PlatformClaude,
		PlatformOpenCode,
		PlatformCodex,
		PlatformGemini,
	}
}

// GlobalConfigDir returns the global config directory for a platform,
// or "" for unknown platforms.
func GlobalConfigDir(platform string) string {
	relPath, ok := platformGlobalConfigs[platform]
	if !ok {
		return ""
	}
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, filepath.FromSlash(relPath))
}

// AgentDir returns the agents directory for a platform:
// <GlobalConfigDir>/agents/
func AgentDir(platform string) string {
	dir := GlobalConfigDir(platform)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "agents")
}

// SkillDir returns the skills directory for a platform:
// <GlobalConfigDir>/skills/
func SkillDir(platform string) string {
	dir := GlobalConfigDir(platform)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "skills")
}

// CommandDir returns the commands directory for a platform:
// <GlobalConfigDir>/commands/
func CommandDir(platform string) string {
	dir := GlobalConfigDir(platform)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "commands")
}

// InstructionFilename returns the platform's instruction file name
// (CLAUDE.md, AGENTS.md, GEMINI.md), or "" for unknown platforms.
func InstructionFilename(platform string) string {
	return platformInstructionFiles[platform]
}

// InstructionsPath returns the path to the platform's global instruction
// file, or "" for unknown platforms.
func InstructionsPath(platform string) string {
	dir := GlobalConfigDir(platform)
	name := InstructionFilename(platform)
	if dir == "" || name == "" {
		return ""
	}
	return filepath.Join(dir, name)
}
