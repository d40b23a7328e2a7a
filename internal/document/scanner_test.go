package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/logging"
)

// writeLibrary lays out a small but representative prompt library.
func writeLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"README.md":              "# Prompt Library\n",
		"agents/reviewer.md":     "---\ndescription: Reviews PRs\n---\n# Reviewer\n",
		"agents/tester.md":       "# Tester\n\nRun the suite.\n",
		"skills/deploy/SKILL.md": "---\nname: deploy\ndescription: Production deploys\n---\n# Deploy\n",
		"commands/commit.md":     "Make a commit.\n",
		"commands/git/sync.md":   "Sync with upstream.\n",
		"docs/conventions.md":    "# Conventions\n",
		"scripts/check.sh":       "#!/bin/sh\n",
		".github/workflow.md":    "ignored\n",
	}
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func countKind(docs []*Document, k Kind) int {
	n := 0
	for _, d := range docs {
		if d.Kind == k {
			n++
		}
	}
	return n
}

func TestScan(t *testing.T) {
	root := writeLibrary(t)

	docs, err := NewScannerWithLogger(logging.ForTest(t)).Scan(root, "local")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if got := countKind(docs, KindAgent); got != 2 {
		t.Errorf("agents = %d, want 2", got)
	}
	if got := countKind(docs, KindSkill); got != 1 {
		t.Errorf("skills = %d, want 1", got)
	}
	if got := countKind(docs, KindCommand); got != 2 {
		t.Errorf("commands = %d, want 2", got)
	}
	// README.md and docs/conventions.md
	if got := countKind(docs, KindGuide); got != 2 {
		t.Errorf("guides = %d, want 2", got)
	}

	for _, d := range docs {
		if d.Library != "local" {
			t.Errorf("Library = %q, want local", d.Library)
		}
		if d.Body != "" {
			t.Errorf("Scan should not load bodies, got %q for %s", d.Body, d.Path)
		}
	}
}

func TestScanNamespacedCommand(t *testing.T) {
	root := writeLibrary(t)

	docs, err := NewScanner().Scan(root, "local")
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, d := range docs {
		if d.Name == "git:sync" && d.Kind == KindCommand {
			found = true
		}
	}
	if !found {
		t.Error("nested command should be named git:sync")
	}
}

func TestScanMissingRoot(t *testing.T) {
	docs, err := NewScanner().Scan(filepath.Join(t.TempDir(), "absent"), "local")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if docs != nil {
		t.Errorf("docs = %v, want nil", docs)
	}
}

func TestScanSkipsMalformedSkill(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(root, "skills", "broken", "SKILL.md")
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	// Invalid YAML in the header.
	if err := os.WriteFile(abs, []byte("---\nname: [oops\n---\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	docs, err := NewScannerWithLogger(logging.ForTest(t)).Scan(root, "local")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("docs = %d, want 0 (malformed file skipped)", len(docs))
	}
}

func TestScanAll(t *testing.T) {
	rootA := writeLibrary(t)
	rootB := writeLibrary(t)

	libs := []config.LibraryConfig{
		{Name: "alpha", Path: rootA},
		{Name: "beta", Path: rootB},
		{Name: "ghost", Path: filepath.Join(t.TempDir(), "absent")},
	}

	docs, err := NewScannerWithLogger(logging.ForTest(t)).ScanAll(libs)
	if err != nil {
		t.Fatalf("ScanAll() error = %v", err)
	}

	perLib := map[string]int{}
	for _, d := range docs {
		perLib[d.Library]++
	}
	if perLib["alpha"] == 0 || perLib["beta"] == 0 {
		t.Errorf("per-library counts = %v", perLib)
	}
	if perLib["alpha"] != perLib["beta"] {
		t.Errorf("identical libraries should yield identical counts: %v", perLib)
	}
}

func TestScanAllEmpty(t *testing.T) {
	docs, err := NewScanner().ScanAll(nil)
	if err != nil {
		t.Fatal(err)
	}
	if docs != nil {
		t.Errorf("docs = %v, want nil", docs)
	}
}

func TestLoadBody(t *testing.T) {
	root := writeLibrary(t)
	s := NewScanner()

	docs, err := s.Scan(root, "local")
	if err != nil {
		t.Fatal(err)
	}

	var skill *Document
	for _, d := range docs {
		if d.Kind == KindSkill {
			skill = d
		}
	}
	if skill == nil {
		t.Fatal("no skill found")
	}

	if err := s.LoadBody(root, skill); err != nil {
		t.Fatalf("LoadBody() error = %v", err)
	}
	if skill.Body == "" {
		t.Error("Body should be loaded")
	}
}
