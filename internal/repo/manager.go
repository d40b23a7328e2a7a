// Package repo manages remote prompt libraries: cloning into the
// cache, registration in the config file, updates, and removal.
package repo

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/git"
	"github.com/promptly-sh/promptly/internal/logging"
	"github.com/promptly-sh/promptly/internal/paths"
	"github.com/promptly-sh/promptly/pkg/fileutil"
)

// Sentinel errors for library operations.
var (
	ErrNotFound           = errors.New("library not found")
	ErrInvalidURL         = errors.New("invalid git URL")
	ErrNameCollision      = errors.New("library with this name already exists")
	ErrInvalidName        = errors.New("invalid library name")
	ErrCacheCleanupFailed = errors.New("cache cleanup failed")
)

// namePattern validates library names: lowercase alphanumeric with
// hyphens, starting with a letter.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// cloneDepth is the shallow clone depth used for library clones.
const cloneDepth = 1

// Client abstracts the git operations the manager needs. The default
// implementation shells out to the git binary.
type Client interface {
	Clone(url, dest string, depth int) error
	Pull(repoPath string) error
}

type execClient struct{}

func (execClient) Clone(url, dest string, depth int) error { return git.Clone(url, dest, depth) }
func (execClient) Pull(repoPath string) error              { return git.Pull(repoPath) }

// Option configures a Manager.
type Option func(*Manager)

// WithCacheDir overrides the clone cache directory.
func WithCacheDir(dir string) Option {
	return func(m *Manager) {
		m.cacheDir = dir
	}
}

// WithClient overrides the git client. Used by tests.
func WithClient(c Client) Option {
	return func(m *Manager) {
		m.git = c
	}
}

// AddOption configures Add behavior.
type AddOption func(*addOptions)

type addOptions struct {
	name string
}

// WithName overrides the library name derived from the URL.
func WithName(name string) AddOption {
	return func(o *addOptions) {
		o.name = name
	}
}

// Manager maintains the set of registered remote libraries.
type Manager struct {
	configPath string
	cacheDir   string
	git        Client
}

// NewManager creates a manager persisting to configPath.
func NewManager(configPath string, opts ...Option) *Manager {
	m := &Manager{
		configPath: configPath,
		cacheDir:   paths.LibraryCacheDir(),
		git:        execClient{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add clones a library and registers it in the config. The name is
// derived from the URL unless WithName overrides it.
func (m *Manager) Add(url string, opts ...AddOption) (*config.LibraryConfig, error) {
	var options addOptions
	for _, opt := range opts {
		opt(&options)
	}

	if !git.IsURL(url) {
		return nil, errors.WithDetail(ErrInvalidURL, url)
	}

	name := options.name
	if name == "" {
		name = DeriveName(url)
	}
	if !namePattern.MatchString(name) {
		return nil, errors.WithDetailf(ErrInvalidName,
			"name %q must be lowercase alphanumeric with hyphens, starting with a letter", name)
	}

	cfg, err := m.loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	if existing, exists := cfg.Libraries[name]; exists {
		return nil, errors.WithDetailf(ErrNameCollision,
			"name %q is already used by %s; use --name to pick another", name, existing.URL)
	}

	if err := os.MkdirAll(m.cacheDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}

	destPath := filepath.Join(m.cacheDir, name)
	// Clone URLs can carry embedded credentials; never log them raw.
	slog.Debug("cloning library", "name", name, "url", logging.MaskURL(url))
	if err := m.git.Clone(url, destPath, cloneDepth); err != nil {
		// Drop any partially created clone.
		if cleanupErr := os.RemoveAll(destPath); cleanupErr != nil {
			return nil, errors.Wrapf(err, "cloning library (cleanup also failed: %v)", cleanupErr)
		}
		return nil, errors.Wrap(err, "cloning library")
	}

	lib := config.LibraryConfig{
		Name:    name,
		URL:     url,
		Path:    destPath,
		AddedAt: time.Now(),
	}

	if cfg.Libraries == nil {
		cfg.Libraries = make(map[string]config.LibraryConfig)
	}
	cfg.Libraries[name] = lib

	if err := m.saveConfig(cfg); err != nil {
		os.RemoveAll(destPath)
		return nil, errors.Wrap(err, "saving config")
	}

	return &lib, nil
}

// List returns registered libraries sorted by name.
func (m *Manager) List() ([]config.LibraryConfig, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	libs := make([]config.LibraryConfig, 0, len(cfg.Libraries))
	for _, lib := range cfg.Libraries {
		libs = append(libs, lib)
	}
	sort.Slice(libs, func(i, j int) bool { return libs[i].Name < libs[j].Name })
	return libs, nil
}

// Remove deregisters a library and deletes its cached clone. The
// config is persisted before the cache is touched, so a failed cleanup
// leaves a consistent registry.
func (m *Manager) Remove(name string) error {
	cfg, err := m.loadConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	lib, exists := cfg.Libraries[name]
	if !exists {
		return errors.WithDetailf(ErrNotFound, "library %q not found", name)
	}

	delete(cfg.Libraries, name)
	if err := m.saveConfig(cfg); err != nil {
		return errors.Wrap(err, "saving config")
	}

	if err := os.RemoveAll(lib.Path); err != nil {
		return errors.Wrapf(ErrCacheCleanupFailed,
			"config updated but cached clone %q remains: %v", lib.Path, err)
	}
	return nil
}

// Update pulls the latest changes. With a name only that library is
// updated; with an empty name all libraries are.
func (m *Manager) Update(name string) error {
	cfg, err := m.loadConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	if len(cfg.Libraries) == 0 {
		if name != "" {
			return errors.WithDetailf(ErrNotFound, "library %q not found", name)
		}
		return nil
	}

	if name != "" {
		lib, exists := cfg.Libraries[name]
		if !exists {
			return errors.WithDetailf(ErrNotFound, "library %q not found", name)
		}
		return m.git.Pull(lib.Path)
	}

	// One broken remote must not block the rest; collect and report all.
	var errs []error
	for _, lib := range cfg.Libraries {
		if err := m.git.Pull(lib.Path); err != nil {
			errs = append(errs, errors.Wrapf(err, "updating library %q", lib.Name))
		}
	}
	return errors.Join(errs...)
}

// Get retrieves a library by name.
func (m *Manager) Get(name string) (*config.LibraryConfig, error) {
	cfg, err := m.loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	lib, exists := cfg.Libraries[name]
	if !exists {
		return nil, errors.WithDetailf(ErrNotFound, "library %q not found", name)
	}
	return &lib, nil
}

// DeriveName extracts a library name from a git URL: the last path
// segment, lowercased, with any .git suffix stripped.
func DeriveName(url string) string {
	// SSH URLs: git@github.com:user/repo.git
	if strings.HasPrefix(url, "git@") {
		if idx := strings.LastIndex(url, ":"); idx != -1 {
			url = url[idx+1:]
		}
	}
	name := filepath.Base(url)
	name = strings.TrimSuffix(name, ".git")
	return strings.ToLower(name)
}

// loadConfig reads the registry, falling back to defaults when the
// config file does not exist yet.
func (m *Manager) loadConfig() (*config.Config, error) {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return &config.Config{
			Version:          1,
			DefaultPlatforms: paths.Platforms(),
			Libraries:        make(map[string]config.LibraryConfig),
		}, nil
	}

	config.Init()
	return config.Load(m.configPath)
}

func (m *Manager) saveConfig(cfg *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteYAML(m.configPath, cfg)
}
