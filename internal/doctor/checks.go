package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/git"
	"github.com/promptly-sh/promptly/internal/platform"
)

// ConfigCheck verifies that the config file parses and validates.
type ConfigCheck struct {
	// Path of the config file. Empty means the default location.
	Path string
}

var _ Check = (*ConfigCheck)(nil)

func (c *ConfigCheck) Name() string     { return "config" }
func (c *ConfigCheck) Category() string { return "config" }

// Run executes the config diagnostic.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path := c.Path
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		result.Status = SeverityInfo
		result.Message = "no config file; defaults in effect"
		result.Details = map[string]any{"path": path}
		return result
	}

	config.Init()
	cfg, err := config.Load(path)
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("config does not parse: %v", err)
		result.FixHint = "fix or delete " + path
		return result
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		result.Status = SeverityError
		result.Message = "config is invalid: " + strings.Join(msgs, "; ")
		result.FixHint = "edit " + path
		return result
	}

	result.Status = SeverityPass
	result.Message = "config parses and validates"
	return result
}

// LibraryCheck verifies that the library root exists and scans cleanly.
type LibraryCheck struct {
	// Root of the local library.
	Root string
}

var _ Check = (*LibraryCheck)(nil)

func (c *LibraryCheck) Name() string     { return "library" }
func (c *LibraryCheck) Category() string { return "library" }

// Run executes the library diagnostic.
func (c *LibraryCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	info, err := os.Stat(c.Root)
	if err != nil || !info.IsDir() {
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("library root %q does not exist", c.Root)
		result.FixHint = "run: promptly init"
		return result
	}

	docs, err := document.NewScanner().Scan(c.Root, "local")
	if err != nil {
		result.Status = SeverityError
		result.Message = fmt.Sprintf("library does not scan: %v", err)
		return result
	}

	counts := make(map[string]int)
	for _, d := range docs {
		counts[string(d.Kind)]++
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("library scans: %d documents", len(docs))
	result.Details = map[string]any{"counts": counts}
	return result
}

// GitCheck verifies the git binary is available.
type GitCheck struct{}

var _ Check = (*GitCheck)(nil)

func (c *GitCheck) Name() string     { return "git" }
func (c *GitCheck) Category() string { return "tools" }

// Run executes the git diagnostic.
func (c *GitCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	if !git.Installed() {
		result.Status = SeverityWarning
		result.Message = "git not found on PATH"
		result.FixHint = "install git to use remote libraries (promptly repo ...)"
		return result
	}

	result.Status = SeverityPass
	result.Message = "git is installed"
	return result
}

// PlatformCheck reports which host platforms are present and whether
// their config directories are writable.
type PlatformCheck struct{}

var _ Check = (*PlatformCheck)(nil)

func (c *PlatformCheck) Name() string     { return "platforms" }
func (c *PlatformCheck) Category() string { return "platform" }

// Run executes the platform diagnostic.
func (c *PlatformCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	installed := platform.DetectInstalled()
	if len(installed) == 0 {
		result.Status = SeverityWarning
		result.Message = "no host platforms detected"
		result.FixHint = "install a supported assistant (claude, gemini, codex, opencode)"
		return result
	}

	names := make([]string, 0, len(installed))
	var unwritable []string
	for _, d := range installed {
		names = append(names, d.Name)
		if !dirWritable(d.GlobalConfig) {
			unwritable = append(unwritable, d.GlobalConfig)
		}
	}

	result.Details = map[string]any{"installed": names}
	if len(unwritable) > 0 {
		result.Status = SeverityError
		result.Message = "platform config not writable: " + strings.Join(unwritable, ", ")
		result.FixHint = "check ownership and permissions"
		return result
	}

	result.Status = SeverityPass
	result.Message = fmt.Sprintf("%d platform(s) detected: %s", len(names), strings.Join(names, ", "))
	return result
}

// CacheCheck verifies that every registered remote library still has
// its cached clone, and flags cache directories nothing references.
type CacheCheck struct {
	// ConfigPath of the registry. Empty means the default location.
	ConfigPath string

	// CacheDir holding the clones.
	CacheDir string
}

var _ Check = (*CacheCheck)(nil)

func (c *CacheCheck) Name() string     { return "cache" }
func (c *CacheCheck) Category() string { return "library" }

// Run executes the cache consistency diagnostic.
func (c *CacheCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	path := c.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	registered := make(map[string]string)
	if _, err := os.Stat(path); err == nil {
		config.Init()
		cfg, err := config.Load(path)
		if err != nil {
			result.Status = SeverityWarning
			result.Message = fmt.Sprintf("cannot read registry: %v", err)
			return result
		}
		for name, lib := range cfg.Libraries {
			registered[name] = lib.Path
		}
	}

	var missing []string
	for name, clonePath := range registered {
		if _, err := os.Stat(clonePath); err != nil {
			missing = append(missing, name)
		}
	}

	var stale []string
	if entries, err := os.ReadDir(c.CacheDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			if _, ok := registered[entry.Name()]; !ok {
				stale = append(stale, filepath.Join(c.CacheDir, entry.Name()))
			}
		}
	}

	switch {
	case len(missing) > 0:
		result.Status = SeverityError
		result.Message = "registered libraries missing from cache: " + strings.Join(missing, ", ")
		result.FixHint = "run: promptly repo remove <name> && promptly repo add <url>"
	case len(stale) > 0:
		result.Status = SeverityWarning
		result.Message = "unregistered directories in cache: " + strings.Join(stale, ", ")
		result.FixHint = "delete them or re-register with promptly repo add"
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("cache consistent: %d librar(ies)", len(registered))
	}
	return result
}

// dirWritable probes a directory by creating and removing a temp file.
func dirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".promptly-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
