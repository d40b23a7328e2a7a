package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSnapshotAndRestore(t *testing.T) {
	work := t.TempDir()
	target := filepath.Join(work, "agents", "reviewer.md")
	writeFile(t, target, "original content\n")

	mgr := NewManager(WithDir(t.TempDir()))

	manifest, err := mgr.Snapshot("claude", target)
	require.NoError(t, err)
	require.NotNil(t, manifest)
	require.Len(t, manifest.Files, 1)
	require.Equal(t, target, manifest.Files[0].OriginalPath)

	// Clobber the target, then restore.
	writeFile(t, target, "overwritten\n")
	require.NoError(t, mgr.Restore("claude", manifest.ID))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "original content\n", string(data))
}

func TestSnapshotSkipsMissingFiles(t *testing.T) {
	mgr := NewManager(WithDir(t.TempDir()))

	manifest, err := mgr.Snapshot("claude", filepath.Join(t.TempDir(), "nope.md"))
	require.NoError(t, err)
	require.Nil(t, manifest)
}

func TestSnapshotRequiresPlatform(t *testing.T) {
	mgr := NewManager(WithDir(t.TempDir()))
	_, err := mgr.Snapshot("", "file.md")
	require.Error(t, err)
}

func TestListNewestFirst(t *testing.T) {
	work := t.TempDir()
	target := filepath.Join(work, "doc.md")
	writeFile(t, target, "v1\n")

	mgr := NewManager(WithDir(t.TempDir()))

	first, err := mgr.Snapshot("gemini", target)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := mgr.Snapshot("gemini", target)
	require.NoError(t, err)

	manifests, err := mgr.List("gemini")
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	require.Equal(t, second.ID, manifests[0].ID)
	require.Equal(t, first.ID, manifests[1].ID)
}

func TestPruneKeepsRetention(t *testing.T) {
	work := t.TempDir()
	target := filepath.Join(work, "doc.md")
	writeFile(t, target, "content\n")

	mgr := NewManager(WithDir(t.TempDir()), WithRetention(2))

	for range 4 {
		_, err := mgr.Snapshot("claude", target)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	manifests, err := mgr.List("claude")
	require.NoError(t, err)
	require.Len(t, manifests, 2)
}

func TestRestoreUnknownSnapshot(t *testing.T) {
	mgr := NewManager(WithDir(t.TempDir()))
	err := mgr.Restore("claude", "20990101T000000000")
	require.ErrorIs(t, err, ErrNotFound)
}
