package commands

import (
	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/paths"
	"github.com/promptly-sh/promptly/internal/platform"
	"github.com/promptly-sh/promptly/internal/platform/claude"
	"github.com/promptly-sh/promptly/internal/platform/gemini"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// localLibrary is the library name attached to documents from the local tree.
const localLibrary = "local"

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// currentConfig returns the loaded configuration, falling back to defaults
// when initialization has not run (e.g. direct calls from tests).
func currentConfig() *config.Config {
	if loadedConfig != nil {
		return loadedConfig
	}
	return &config.Config{Version: 1, DefaultPlatforms: paths.Platforms()}
}

// libraryRoot returns the root of the local prompt library.
func libraryRoot() string {
	if dir := currentConfig().LibraryDir; dir != "" {
		return dir
	}
	return "."
}

// libraryRootFor resolves the filesystem root for a document's library.
func libraryRootFor(d *document.Document) (string, error) {
	if d.Library == "" || d.Library == localLibrary {
		return libraryRoot(), nil
	}
	lib, ok := currentConfig().Libraries[d.Library]
	if !ok {
		return "", errors.Newf("library %q is not registered", d.Library)
	}
	return lib.Path, nil
}

// collectDocuments scans the local library and every registered remote
// library. Bodies are left unloaded.
func collectDocuments() ([]*document.Document, error) {
	scanner := document.NewScanner()

	docs, err := scanner.Scan(libraryRoot(), localLibrary)
	if err != nil {
		return nil, err
	}

	cfg := currentConfig()
	if len(cfg.Libraries) > 0 {
		libs := make([]config.LibraryConfig, 0, len(cfg.Libraries))
		for _, lib := range cfg.Libraries {
			libs = append(libs, lib)
		}
		remote, err := scanner.ScanAll(libs)
		if err != nil {
			return nil, err
		}
		docs = append(docs, remote...)
	}

	return docs, nil
}

// loadBody fills a scanned document's body from disk.
func loadBody(d *document.Document) error {
	root, err := libraryRootFor(d)
	if err != nil {
		return err
	}
	return document.NewScanner().LoadBody(root, d)
}

// defaultRegistry returns a registry with every supported platform.
func defaultRegistry() *platform.Registry {
	reg := platform.NewRegistry()
	// Registration of built-in platforms cannot fail.
	_ = reg.Register(claude.New())
	_ = reg.Register(gemini.New())
	return reg
}

// targetPlatforms resolves the platforms a command should act on:
// the --platform flag if given, otherwise configured defaults that have a
// registered implementation, otherwise every detected platform, otherwise
// everything registered.
func targetPlatforms(reg *platform.Registry) []string {
	if len(platformFlag) > 0 {
		return platformFlag
	}

	registered := make(map[string]bool)
	for _, p := range reg.All() {
		registered[p.Name()] = true
	}

	var defaults []string
	for _, name := range currentConfig().DefaultPlatforms {
		if registered[name] {
			defaults = append(defaults, name)
		}
	}
	if len(defaults) > 0 {
		return defaults
	}

	if available := reg.Available(); len(available) > 0 {
		names := make([]string, len(available))
		for i, p := range available {
			names[i] = p.Name()
		}
		return names
	}

	names := make([]string, 0, len(registered))
	for _, p := range reg.All() {
		names = append(names, p.Name())
	}
	return names
}
