package gemini

import (
	"sort"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/paths"
	"github.com/promptly-sh/promptly/internal/platform"
)

// ErrUnsupportedKind is returned for kinds Gemini CLI has no home for.
var ErrUnsupportedKind = errors.New("kind not supported by gemini")

// Option configures a Platform.
type Option func(*Platform)

// WithRoot overrides the configuration root. Used by tests.
func WithRoot(root string) Option {
	return func(p *Platform) {
		p.root = root
	}
}

// Platform is the Gemini CLI adapter.
type Platform struct {
	root string
}

// New creates a Gemini CLI adapter rooted at ~/.gemini unless
// overridden.
func New(opts ...Option) *Platform {
	p := &Platform{
		root: paths.GlobalConfigDir(paths.PlatformGemini),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return paths.PlatformGemini
}

// GlobalConfigDir returns the configuration root.
func (p *Platform) GlobalConfigDir() string {
	return p.root
}

// InstructionFilename returns GEMINI.md.
func (p *Platform) InstructionFilename() string {
	return paths.InstructionFilename(paths.PlatformGemini)
}

// Supports reports which kinds Gemini CLI can host. Commands install
// natively; agents go into the GEMINI.md context file.
func (p *Platform) Supports(kind document.Kind) bool {
	switch kind {
	case document.KindAgent, document.KindCommand:
		return true
	default:
		return false
	}
}

// Install writes the document in Gemini CLI's format and returns the
// path written.
func (p *Platform) Install(d *document.Document) (string, error) {
	if d == nil || d.Name == "" {
		return "", errors.ErrMissingName
	}

	switch d.Kind {
	case document.KindCommand:
		return p.installCommand(&Command{
			Name:        d.Name,
			Description: d.Meta.Description,
			Prompt:      d.Body,
		})
	case document.KindAgent:
		return p.installAgentSection(d.Name, d.Body)
	default:
		return "", errors.Wrapf(ErrUnsupportedKind, "%s", d.Kind)
	}
}

// Uninstall removes an installed document. Idempotent.
func (p *Platform) Uninstall(kind document.Kind, name string) error {
	if name == "" {
		return errors.ErrMissingName
	}

	switch kind {
	case document.KindCommand:
		return p.uninstallCommand(name)
	case document.KindAgent:
		return p.uninstallAgentSection(name)
	default:
		return errors.Wrapf(ErrUnsupportedKind, "%s", kind)
	}
}

// List returns installed documents of the given kind.
func (p *Platform) List(kind document.Kind) ([]platform.Installed, error) {
	switch kind {
	case document.KindCommand:
		names, files, err := p.listCommandNames()
		if err != nil {
			return nil, err
		}
		installed := make([]platform.Installed, 0, len(names))
		for i, name := range names {
			installed = append(installed, platform.Installed{
				Kind: document.KindCommand,
				Name: name,
				Path: files[i],
			})
		}
		return installed, nil

	case document.KindAgent:
		sections, err := p.agentSections()
		if err != nil {
			return nil, err
		}
		installed := make([]platform.Installed, 0, len(sections))
		for name := range sections {
			installed = append(installed, platform.Installed{
				Kind: document.KindAgent,
				Name: name,
				Path: p.contextPath(),
			})
		}
		sort.Slice(installed, func(i, j int) bool {
			return installed[i].Name < installed[j].Name
		})
		return installed, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedKind, "%s", kind)
	}
}

// Get reads an installed document back in canonical form.
func (p *Platform) Get(kind document.Kind, name string) (*document.Document, error) {
	if name == "" {
		return nil, errors.ErrMissingName
	}

	switch kind {
	case document.KindCommand:
		cmd, err := p.readCommand(name)
		if err != nil {
			return nil, err
		}
		return &document.Document{
			Kind: document.KindCommand,
			Name: cmd.Name,
			Meta: document.Metadata{Description: cmd.Description},
			Body: cmd.Prompt,
		}, nil

	case document.KindAgent:
		sections, err := p.agentSections()
		if err != nil {
			return nil, err
		}
		body, ok := sections[name]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "agent %q", name)
		}
		return &document.Document{
			Kind: document.KindAgent,
			Name: name,
			Body: body,
		}, nil

	default:
		return nil, errors.Wrapf(ErrUnsupportedKind, "%s", kind)
	}
}

// uninstallCommand removes a command file. Idempotent.
func (p *Platform) uninstallCommand(name string) error {
	target := p.commandPath(name)
	if target == "" {
		return nil
	}
	if err := removeIfExists(target); err != nil {
		return errors.Wrapf(err, "removing command %q", name)
	}
	return nil
}
