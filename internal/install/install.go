// Package install orchestrates putting library documents onto host
// platforms. Documents are linted before anything touches the target;
// a document with lint errors never installs anywhere.
package install

import (
	"log/slog"
	"strings"

	"github.com/promptly-sh/promptly/internal/backup"
	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/internal/lint"
	"github.com/promptly-sh/promptly/internal/logging"
	"github.com/promptly-sh/promptly/internal/platform"
)

// ErrValidationFailed indicates the document has lint errors and was
// not installed.
var ErrValidationFailed = errors.New("document failed validation")

// Result records the outcome for one platform.
type Result struct {
	// Platform is the platform name.
	Platform string

	// Path is where the document was written, empty on failure.
	Path string

	// Err is the per-platform failure, nil on success.
	Err error
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Installer) {
		i.logger = logger
	}
}

// WithBackup snapshots existing platform documents before they are
// overwritten or removed. Snapshot failures are logged, never fatal.
func WithBackup(mgr *backup.Manager) Option {
	return func(i *Installer) {
		i.backups = mgr
	}
}

// Installer fans documents out to registered platforms.
type Installer struct {
	registry *platform.Registry
	linter   *lint.Linter
	logger   *slog.Logger
	backups  *backup.Manager
}

// New creates an Installer over the given registry.
func New(registry *platform.Registry, opts ...Option) *Installer {
	i := &Installer{
		registry: registry,
		linter:   lint.New(lint.WithStrict(true)),
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install validates d and installs it on each named platform. The
// document's body must be loaded. A validation failure aborts before
// any platform is touched; per-platform failures are reported in the
// results and do not stop the remaining platforms.
func (i *Installer) Install(d *document.Document, platforms []string) ([]Result, error) {
	if d == nil {
		return nil, errors.ErrNotFound
	}

	if res := i.linter.Document(d); res.HasErrors() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, issue := range res.Errors() {
			msgs = append(msgs, issue.Error())
		}
		return nil, errors.WithDetail(ErrValidationFailed, strings.Join(msgs, "\n"))
	}

	results := make([]Result, 0, len(platforms))
	for _, name := range platforms {
		r := Result{Platform: name}

		p, err := i.registry.Get(name)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		if !p.Supports(d.Kind) {
			r.Err = errors.Newf("platform %q does not support %s documents", name, d.Kind)
			results = append(results, r)
			continue
		}

		i.snapshot(p, d.Kind, d.Name)

		path, err := p.Install(d)
		if err != nil {
			r.Err = errors.Wrapf(err, "installing on %q", name)
		} else {
			r.Path = path
			i.logger.Info("installed document",
				"kind", string(d.Kind), "name", d.Name, "platform", name, "path", path)
		}
		results = append(results, r)
	}
	return results, nil
}

// Uninstall removes the document from each named platform. Platforms
// that do not support the kind are skipped silently; uninstalling
// something that was never installed is not an error.
func (i *Installer) Uninstall(kind document.Kind, name string, platforms []string) []Result {
	results := make([]Result, 0, len(platforms))
	for _, pname := range platforms {
		r := Result{Platform: pname}

		p, err := i.registry.Get(pname)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		if !p.Supports(kind) {
			results = append(results, r)
			continue
		}

		i.snapshot(p, kind, name)

		if err := p.Uninstall(kind, name); err != nil {
			r.Err = errors.Wrapf(err, "uninstalling from %q", pname)
		} else {
			i.logger.Info("uninstalled document",
				"kind", string(kind), "name", name, "platform", pname)
		}
		results = append(results, r)
	}
	return results
}

// snapshot backs up the platform's current copy of the document, if
// backups are enabled and the document is installed.
func (i *Installer) snapshot(p platform.Platform, kind document.Kind, name string) {
	if i.backups == nil {
		return
	}

	installed, err := p.List(kind)
	if err != nil {
		i.logger.Warn("skipping backup", "platform", p.Name(), "error", err)
		return
	}
	for _, entry := range installed {
		if entry.Name != name {
			continue
		}
		if _, err := i.backups.Snapshot(p.Name(), entry.Path); err != nil {
			i.logger.Warn("backup failed",
				"platform", p.Name(), "path", entry.Path, "error", err)
		}
		return
	}
}

// Failed reports whether any result carries an error.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}
