// Package backup snapshots installed platform documents before promptly
// overwrites or removes them, so a bad install can be rolled back.
//
// Snapshots live under <CacheHome>/promptly/backups/<platform>/<id>/,
// one directory per snapshot with a manifest.json describing the files.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/promptly-sh/promptly/internal/paths"
	"github.com/promptly-sh/promptly/pkg/fileutil"
)

// DefaultRetention is how many snapshots are kept per platform.
const DefaultRetention = 10

// manifestVersion is the manifest schema version.
const manifestVersion = 1

// ErrNotFound indicates the requested snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// File records one backed-up file.
type File struct {
	// OriginalPath is the absolute path the file was copied from.
	OriginalPath string `json:"original_path"`

	// RelPath is the file's location inside the snapshot directory.
	RelPath string `json:"rel_path"`

	// SHA256 is the hash of the file content, for restore verification.
	SHA256 string `json:"sha256"`

	// Mode is the original file mode.
	Mode os.FileMode `json:"mode"`
}

// Manifest describes one snapshot.
type Manifest struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Platform  string    `json:"platform"`
	Files     []File    `json:"files"`
}

// Option configures a Manager.
type Option func(*Manager)

// WithDir sets the root snapshot directory.
func WithDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetention sets how many snapshots to keep per platform.
func WithRetention(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retention = n
		}
	}
}

// Manager creates, lists, restores, and prunes snapshots.
type Manager struct {
	rootDir   string
	retention int
}

// NewManager creates a Manager with the given options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:   DefaultDir(),
		retention: DefaultRetention,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultDir returns the standard snapshot root:
// <CacheHome>/promptly/backups/
func DefaultDir() string {
	return filepath.Join(paths.CacheHome(), paths.AppName, "backups")
}

// Snapshot copies the given files into a new snapshot for the platform.
// Missing files are skipped; a snapshot with nothing to copy returns a
// nil manifest and no error.
func (m *Manager) Snapshot(platform string, files ...string) (*Manifest, error) {
	if platform == "" {
		return nil, errors.New("platform is required")
	}

	id := time.Now().UTC().Format("20060102T150405.000")
	// Dots confuse manifest lookups on some filesystems.
	id = strings.ReplaceAll(id, ".", "")
	dir := m.snapshotDir(platform, id)

	var copied []File
	for _, src := range files {
		info, err := os.Stat(src)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "stat %s", src)
		}
		if info.IsDir() {
			continue
		}

		rel := relPathFor(src)
		dst := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, errors.Wrap(err, "creating snapshot directory")
		}

		hash, err := copyFile(src, dst, info.Mode())
		if err != nil {
			return nil, errors.Wrapf(err, "copying %s", src)
		}
		copied = append(copied, File{
			OriginalPath: src,
			RelPath:      rel,
			SHA256:       hash,
			Mode:         info.Mode(),
		})
	}

	if len(copied) == 0 {
		os.RemoveAll(dir)
		return nil, nil
	}

	manifest := &Manifest{
		Version:   manifestVersion,
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Platform:  platform,
		Files:     copied,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(platform); err != nil {
		return manifest, errors.Wrap(err, "pruning old snapshots")
	}
	return manifest, nil
}

// List returns the platform's snapshots, newest first.
func (m *Manager) List(platform string) ([]*Manifest, error) {
	dir := filepath.Join(m.rootDir, platform)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "reading snapshot directory")
	}

	var manifests []*Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.readManifest(platform, entry.Name())
		if err != nil {
			// A snapshot without a readable manifest is unusable;
			// skip it rather than failing the whole listing.
			continue
		}
		manifests = append(manifests, manifest)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].ID > manifests[j].ID
	})
	return manifests, nil
}

// Restore copies every file in the snapshot back to its original
// location, verifying content hashes first.
func (m *Manager) Restore(platform, id string) error {
	manifest, err := m.readManifest(platform, id)
	if err != nil {
		return err
	}

	dir := m.snapshotDir(platform, id)
	for _, f := range manifest.Files {
		src := filepath.Join(dir, f.RelPath)

		hash, err := hashFile(src)
		if err != nil {
			return errors.Wrapf(err, "hashing %s", f.RelPath)
		}
		if hash != f.SHA256 {
			return errors.Newf("snapshot file %s is corrupt", f.RelPath)
		}

		if err := os.MkdirAll(filepath.Dir(f.OriginalPath), 0o755); err != nil {
			return errors.Wrap(err, "creating target directory")
		}
		if _, err := copyFile(src, f.OriginalPath, f.Mode); err != nil {
			return errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
	}
	return nil
}

// Prune removes the oldest snapshots beyond the retention count.
func (m *Manager) Prune(platform string) error {
	manifests, err := m.List(platform)
	if err != nil {
		return err
	}
	if len(manifests) <= m.retention {
		return nil
	}

	for _, manifest := range manifests[m.retention:] {
		if err := os.RemoveAll(m.snapshotDir(platform, manifest.ID)); err != nil {
			return errors.Wrapf(err, "removing snapshot %s", manifest.ID)
		}
	}
	return nil
}

func (m *Manager) snapshotDir(platform, id string) string {
	return filepath.Join(m.rootDir, platform, id)
}

func (m *Manager) readManifest(platform, id string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(m.snapshotDir(platform, id), "manifest.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s/%s", platform, id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	return &manifest, nil
}

// relPathFor flattens an absolute path into a snapshot-relative one.
func relPathFor(src string) string {
	rel := filepath.ToSlash(src)
	rel = strings.TrimPrefix(rel, "/")
	rel = strings.ReplaceAll(rel, ":", "_")
	return filepath.FromSlash(rel)
}

// copyFile copies src to dst with the given mode and returns the
// content's SHA256 hash.
func copyFile(src, dst string, mode os.FileMode) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return "", err
	}
	defer out.Close()

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
