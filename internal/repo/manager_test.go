package repo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptly-sh/promptly/internal/errors"
)

// fakeClient records git operations and fabricates clones on disk.
type fakeClient struct {
	cloned  []string
	pulled  []string
	failErr error

	// pullErrs fails Pull for specific clone directories (keyed by base
	// name) after the attempt is recorded.
	pullErrs map[string]error
}

func (f *fakeClient) Clone(url, dest string, depth int) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.cloned = append(f.cloned, url)
	return os.MkdirAll(filepath.Join(dest, ".git"), 0o755)
}

func (f *fakeClient) Pull(repoPath string) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.pulled = append(f.pulled, repoPath)
	return f.pullErrs[filepath.Base(repoPath)]
}

func newTestManager(t *testing.T) (*Manager, *fakeClient) {
	t.Helper()
	fake := &fakeClient{}
	m := NewManager(
		filepath.Join(t.TempDir(), "config.yaml"),
		WithCacheDir(t.TempDir()),
		WithClient(fake),
	)
	return m, fake
}

func TestAddRegistersLibrary(t *testing.T) {
	m, fake := newTestManager(t)

	lib, err := m.Add("https://github.com/acme/prompts.git")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if lib.Name != "prompts" {
		t.Errorf("name = %q, want prompts", lib.Name)
	}
	if len(fake.cloned) != 1 {
		t.Errorf("cloned = %v", fake.cloned)
	}
	if _, err := os.Stat(lib.Path); err != nil {
		t.Errorf("clone path missing: %v", err)
	}

	got, err := m.Get("prompts")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.URL != "https://github.com/acme/prompts.git" {
		t.Errorf("url = %q", got.URL)
	}
}

func TestAddWithName(t *testing.T) {
	m, _ := newTestManager(t)

	lib, err := m.Add("git@github.com:acme/Prompt-Library.git", WithName("work"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if lib.Name != "work" {
		t.Errorf("name = %q, want work", lib.Name)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Add("not-a-url"); !errors.Is(err, ErrInvalidURL) {
		t.Errorf("err = %v, want ErrInvalidURL", err)
	}
	if _, err := m.Add("https://github.com/acme/prompts.git", WithName("Bad_Name")); !errors.Is(err, ErrInvalidName) {
		t.Errorf("err = %v, want ErrInvalidName", err)
	}
}

func TestAddNameCollision(t *testing.T) {
	m, _ := newTestManager(t)

	if _, err := m.Add("https://github.com/acme/prompts.git"); err != nil {
		t.Fatal(err)
	}
	_, err := m.Add("https://github.com/other/prompts.git")
	if !errors.Is(err, ErrNameCollision) {
		t.Errorf("err = %v, want ErrNameCollision", err)
	}
}

func TestAddCleansUpFailedClone(t *testing.T) {
	m, fake := newTestManager(t)
	fake.failErr = errors.New("boom")

	if _, err := m.Add("https://github.com/acme/prompts.git"); err == nil {
		t.Fatal("Add should fail")
	}
	if _, err := os.Stat(filepath.Join(m.cacheDir, "prompts")); !os.IsNotExist(err) {
		t.Error("partial clone should be removed")
	}
	libs, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(libs) != 0 {
		t.Errorf("library should not be registered: %+v", libs)
	}
}

func TestRemoveDeletesCloneAndEntry(t *testing.T) {
	m, _ := newTestManager(t)

	lib, err := m.Add("https://github.com/acme/prompts.git")
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Remove("prompts"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(lib.Path); !os.IsNotExist(err) {
		t.Error("cached clone should be deleted")
	}
	if _, err := m.Get("prompts"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if err := m.Remove("prompts"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove err = %v, want ErrNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	m, fake := newTestManager(t)

	if _, err := m.Add("https://github.com/acme/one.git"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Add("https://github.com/acme/two.git"); err != nil {
		t.Fatal(err)
	}

	if err := m.Update("one"); err != nil {
		t.Fatalf("Update(one): %v", err)
	}
	if len(fake.pulled) != 1 {
		t.Errorf("pulled = %v", fake.pulled)
	}

	if err := m.Update(""); err != nil {
		t.Fatalf("Update all: %v", err)
	}
	if len(fake.pulled) != 3 {
		t.Errorf("pulled = %v, want 3 pulls total", fake.pulled)
	}

	if err := m.Update("absent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateAllContinuesPastFailures(t *testing.T) {
	m, fake := newTestManager(t)

	for _, url := range []string{
		"https://github.com/acme/one.git",
		"https://github.com/acme/two.git",
		"https://github.com/acme/three.git",
	} {
		if _, err := m.Add(url); err != nil {
			t.Fatal(err)
		}
	}

	fake.pullErrs = map[string]error{"two": errors.New("remote unreachable")}

	err := m.Update("")
	if err == nil {
		t.Fatal("Update all should report the failed library")
	}
	if !strings.Contains(err.Error(), `"two"`) {
		t.Errorf("err = %v, want mention of library two", err)
	}
	if len(fake.pulled) != 3 {
		t.Errorf("pulled = %v, want all 3 libraries attempted", fake.pulled)
	}
}

func TestListEmpty(t *testing.T) {
	m, _ := newTestManager(t)
	libs, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(libs) != 0 {
		t.Errorf("List = %+v, want empty", libs)
	}
}

func TestDeriveName(t *testing.T) {
	tests := []struct {
		url, want string
	}{
		{"https://github.com/acme/prompts.git", "prompts"},
		{"https://github.com/acme/Prompt-Library", "prompt-library"},
		{"git@github.com:acme/prompts.git", "prompts"},
		{"git://example.com/deep/path/lib.git", "lib"},
	}
	for _, tt := range tests {
		if got := DeriveName(tt.url); got != tt.want {
			t.Errorf("DeriveName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
