package claude

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/paths"
	"github.com/promptly-sh/promptly/internal/platform"
	"github.com/promptly-sh/promptly/pkg/fileutil"
)

// ErrUnsupportedKind is returned for kinds Claude Code has no home for.
var ErrUnsupportedKind = errors.New("kind not supported by claude")

// Option configures a Platform.
type Option func(*Platform)

// WithRoot overrides the configuration root. Used by tests.
func WithRoot(root string) Option {
	return func(p *Platform) {
		p.root = root
	}
}

// Platform is the Claude Code adapter.
type Platform struct {
	root string
}

// New creates a Claude Code adapter rooted at ~/.claude unless
// overridden.
func New(opts ...Option) *Platform {
	p := &Platform{
		root: paths.GlobalConfigDir(paths.PlatformClaude),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return paths.PlatformClaude
}

// GlobalConfigDir returns the configuration root.
func (p *Platform) GlobalConfigDir() string {
	return p.root
}

// InstructionFilename returns CLAUDE.md.
func (p *Platform) InstructionFilename() string {
	return paths.InstructionFilename(paths.PlatformClaude)
}

// Supports reports whether the kind has a home under ~/.claude. Guides
// are library-side documents with no install target.
func (p *Platform) Supports(kind document.Kind) bool {
	switch kind {
	case document.KindAgent, document.KindSkill, document.KindCommand:
		return true
	default:
		return false
	}
}

// Install writes the document under the configuration root and returns
// the path written. The document's body must be loaded.
func (p *Platform) Install(d *document.Document) (string, error) {
	if d == nil || d.Name == "" {
		return "", errors.ErrMissingName
	}
	if !p.Supports(d.Kind) {
		return "", errors.Wrapf(ErrUnsupportedKind, "%s", d.Kind)
	}

	target := p.documentPath(d.Kind, d.Name)
	if target == "" {
		return "", errors.Newf("cannot resolve install path for %s %q", d.Kind, d.Name)
	}

	content, err := document.Content(d)
	if err != nil {
		return "", errors.Wrap(err, "formatting document")
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(err, "creating target directory")
	}
	if err := fileutil.AtomicWriteFile(target, content, 0o644); err != nil {
		return "", errors.Wrap(err, "writing document")
	}
	return target, nil
}

// Uninstall removes an installed document. Skills are removed with
// their whole directory. Idempotent.
func (p *Platform) Uninstall(kind document.Kind, name string) error {
	if name == "" {
		return errors.ErrMissingName
	}
	if !p.Supports(kind) {
		return errors.Wrapf(ErrUnsupportedKind, "%s", kind)
	}

	var target string
	if kind == document.KindSkill {
		target = filepath.Join(p.root, "skills", name)
	} else {
		target = p.documentPath(kind, name)
	}
	if target == "" {
		return nil
	}

	err := os.RemoveAll(target)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "removing %s %q", kind, name)
	}
	return nil
}

// List returns installed documents of the given kind.
func (p *Platform) List(kind document.Kind) ([]platform.Installed, error) {
	if !p.Supports(kind) {
		return nil, errors.Wrapf(ErrUnsupportedKind, "%s", kind)
	}

	switch kind {
	case document.KindAgent:
		return p.listAgents()
	case document.KindSkill:
		return p.listSkills()
	default:
		return p.listCommands()
	}
}

// Get reads an installed document back.
func (p *Platform) Get(kind document.Kind, name string) (*document.Document, error) {
	if name == "" {
		return nil, errors.ErrMissingName
	}
	if !p.Supports(kind) {
		return nil, errors.Wrapf(ErrUnsupportedKind, "%s", kind)
	}

	target := p.documentPath(kind, name)
	if _, err := os.Stat(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "%s %q", kind, name)
		}
		return nil, errors.Wrapf(err, "reading %s %q", kind, name)
	}

	rel, err := filepath.Rel(p.root, target)
	if err != nil {
		return nil, errors.Wrap(err, "resolving document path")
	}

	d, err := document.NewParser().ParseFile(target, filepath.ToSlash(rel))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s %q", kind, name)
	}
	return d, nil
}

// documentPath maps a kind and canonical name to the on-disk path.
func (p *Platform) documentPath(kind document.Kind, name string) string {
	if p.root == "" || name == "" {
		return ""
	}
	switch kind {
	case document.KindAgent:
		return filepath.Join(p.root, "agents", name+".md")
	case document.KindSkill:
		return filepath.Join(p.root, "skills", name, "SKILL.md")
	case document.KindCommand:
		rel := strings.ReplaceAll(name, ":", string(filepath.Separator))
		return filepath.Join(p.root, "commands", rel+".md")
	default:
		return ""
	}
}

func (p *Platform) listAgents() ([]platform.Installed, error) {
	dir := filepath.Join(p.root, "agents")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading agents directory")
	}

	var installed []platform.Installed
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		installed = append(installed, platform.Installed{
			Kind: document.KindAgent,
			Name: name,
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	return installed, nil
}

func (p *Platform) listSkills() ([]platform.Installed, error) {
	dir := filepath.Join(p.root, "skills")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading skills directory")
	}

	var installed []platform.Installed
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		skillFile := filepath.Join(dir, entry.Name(), "SKILL.md")
		if _, err := os.Stat(skillFile); err != nil {
			continue
		}
		installed = append(installed, platform.Installed{
			Kind: document.KindSkill,
			Name: entry.Name(),
			Path: skillFile,
		})
	}
	return installed, nil
}

func (p *Platform) listCommands() ([]platform.Installed, error) {
	dir := filepath.Join(p.root, "commands")
	var installed []platform.Installed
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".md")
		installed = append(installed, platform.Installed{
			Kind: document.KindCommand,
			Name: strings.ReplaceAll(name, "/", ":"),
			Path: path,
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "walking commands directory")
	}
	return installed, nil
}
