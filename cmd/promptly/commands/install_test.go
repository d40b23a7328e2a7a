package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptly-sh/promptly/internal/install"
	"github.com/promptly-sh/promptly/internal/platform"
	"github.com/promptly-sh/promptly/internal/platform/claude"
	"github.com/promptly-sh/promptly/internal/platform/gemini"
)

// testRegistry builds a registry rooted in temp directories.
func testRegistry(t *testing.T) (*platform.Registry, string, string) {
	t.Helper()

	claudeRoot := t.TempDir()
	geminiRoot := t.TempDir()

	reg := platform.NewRegistry()
	if err := reg.Register(claude.New(claude.WithRoot(claudeRoot))); err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(gemini.New(gemini.WithRoot(geminiRoot))); err != nil {
		t.Fatal(err)
	}
	return reg, claudeRoot, geminiRoot
}

func TestRunInstall_Agent(t *testing.T) {
	setupLibrary(t)
	installKind = ""
	t.Cleanup(func() { installKind = "" })

	reg, claudeRoot, geminiRoot := testRegistry(t)

	var buf bytes.Buffer
	if err := runInstallWith("reviewer", reg, install.New(reg), &buf); err != nil {
		t.Fatalf("runInstallWith failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(claudeRoot, "agents", "reviewer.md")); err != nil {
		t.Errorf("agent not installed for claude: %v", err)
	}
	// Gemini agents land in the managed context file.
	data, err := os.ReadFile(filepath.Join(geminiRoot, "GEMINI.md"))
	if err != nil {
		t.Fatalf("GEMINI.md not written: %v", err)
	}
	if !strings.Contains(string(data), "promptly:agent:reviewer") {
		t.Errorf("agent section missing from GEMINI.md:\n%s", data)
	}
}

func TestRunInstall_SkillPartialFailure(t *testing.T) {
	setupLibrary(t)
	installKind = ""
	t.Cleanup(func() { installKind = "" })

	reg, claudeRoot, _ := testRegistry(t)

	var buf bytes.Buffer
	err := runInstallWith("deploy", reg, install.New(reg), &buf)
	// Gemini has no skill support, so the overall run fails while the
	// claude install still lands.
	if err == nil {
		t.Fatal("expected partial failure")
	}
	if _, statErr := os.Stat(filepath.Join(claudeRoot, "skills", "deploy", "SKILL.md")); statErr != nil {
		t.Errorf("skill not installed for claude: %v", statErr)
	}
	if !strings.Contains(buf.String(), "gemini") {
		t.Errorf("expected per-platform failure in output:\n%s", buf.String())
	}
}

func TestRunInstall_NotFound(t *testing.T) {
	setupLibrary(t)
	installKind = ""
	t.Cleanup(func() { installKind = "" })

	reg, _, _ := testRegistry(t)

	var buf bytes.Buffer
	if err := runInstallWith("missing", reg, install.New(reg), &buf); err == nil {
		t.Error("expected error for unknown document")
	}
}

func TestRunRemove_Roundtrip(t *testing.T) {
	setupLibrary(t)
	installKind = ""
	removeKind = ""
	t.Cleanup(func() { installKind = ""; removeKind = "" })

	reg, claudeRoot, _ := testRegistry(t)

	var buf bytes.Buffer
	if err := runInstallWith("reviewer", reg, install.New(reg), &buf); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	removeKind = "agent"
	if err := runRemoveWith("reviewer", reg, install.New(reg), &buf); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(claudeRoot, "agents", "reviewer.md")); !os.IsNotExist(err) {
		t.Errorf("agent still installed: %v", err)
	}
}

func TestRunRemove_InfersKindFromLibrary(t *testing.T) {
	setupLibrary(t)
	removeKind = ""
	t.Cleanup(func() { removeKind = "" })

	reg, _, _ := testRegistry(t)

	var buf bytes.Buffer
	// Removing something never installed is idempotent once the kind
	// resolves from the library.
	if err := runRemoveWith("deploy", reg, install.New(reg), &buf); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
}
