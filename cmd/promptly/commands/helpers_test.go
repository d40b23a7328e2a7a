package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/paths"
)

// setupLibrary writes a small library fixture and points the loaded config
// at it. State is restored when the test finishes.
func setupLibrary(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFixture(t, root, "agents/reviewer.md",
		"---\ndescription: Reviews code\n---\n\n# Reviewer\n\nReview the diff.\n")
	writeFixture(t, root, "skills/deploy/SKILL.md",
		"---\nname: deploy\ndescription: Deploys the app\n---\n\n# Deploy\n\nShip it.\n")
	writeFixture(t, root, "commands/git/commit.md",
		"---\ndescription: Writes a commit\n---\n\n# Commit\n\nUse $ARGUMENTS.\n")
	writeFixture(t, root, "guide.md",
		"# Guide\n\nHow to use this library.\n")

	orig := loadedConfig
	loadedConfig = &config.Config{
		Version:          1,
		LibraryDir:       root,
		DefaultPlatforms: paths.Platforms(),
	}
	t.Cleanup(func() { loadedConfig = orig })

	return root
}

// testConfig builds a config pointing at the given library root.
func testConfig(root string) *config.Config {
	return &config.Config{
		Version:          1,
		LibraryDir:       root,
		DefaultPlatforms: paths.Platforms(),
	}
}

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly-10", 10, "exactly-10"},
		{"this is a longer string", 10, "this is..."},
		{"abcdef", 3, "abc"},
		{"héllo wörld, ünïcode tëxt", 10, "héllo w..."},
		{"héllo", 10, "héllo"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestLibraryRootDefaults(t *testing.T) {
	orig := loadedConfig
	loadedConfig = nil
	t.Cleanup(func() { loadedConfig = orig })

	if got := libraryRoot(); got != "." {
		t.Errorf("libraryRoot() = %q, want %q", got, ".")
	}
}

func TestCollectDocuments(t *testing.T) {
	setupLibrary(t)

	docs, err := collectDocuments()
	if err != nil {
		t.Fatalf("collectDocuments failed: %v", err)
	}
	if len(docs) != 4 {
		t.Fatalf("expected 4 documents, got %d", len(docs))
	}

	byName := make(map[string]string)
	for _, d := range docs {
		byName[d.Name] = string(d.Kind)
	}
	want := map[string]string{
		"reviewer":   "agent",
		"deploy":     "skill",
		"git:commit": "command",
		"guide":      "guide",
	}
	for name, kind := range want {
		if byName[name] != kind {
			t.Errorf("document %q: kind = %q, want %q", name, byName[name], kind)
		}
	}
}

func TestTargetPlatformsFlagPrecedence(t *testing.T) {
	setupLibrary(t)

	orig := platformFlag
	platformFlag = []string{"gemini"}
	t.Cleanup(func() { platformFlag = orig })

	got := targetPlatforms(defaultRegistry())
	if len(got) != 1 || got[0] != "gemini" {
		t.Errorf("targetPlatforms() = %v, want [gemini]", got)
	}
}

func TestTargetPlatformsConfigDefaults(t *testing.T) {
	setupLibrary(t)

	orig := platformFlag
	platformFlag = nil
	t.Cleanup(func() { platformFlag = orig })

	// Config defaults include platforms with no implementation; only the
	// registered ones survive.
	got := targetPlatforms(defaultRegistry())
	if len(got) != 2 || got[0] != "claude" || got[1] != "gemini" {
		t.Errorf("targetPlatforms() = %v, want [claude gemini]", got)
	}
}
