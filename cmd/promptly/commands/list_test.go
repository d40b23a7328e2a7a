package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func resetListFlags() {
	listKind = ""
	listLibrary = ""
	listJSON = false
}

func TestRunList_Tabular(t *testing.T) {
	setupLibrary(t)
	resetListFlags()
	t.Cleanup(resetListFlags)

	var buf bytes.Buffer
	if err := runListWithWriter(&buf); err != nil {
		t.Fatalf("runListWithWriter failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"KIND", "reviewer", "deploy", "git:commit", "Reviews code"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunList_KindFilter(t *testing.T) {
	setupLibrary(t)
	resetListFlags()
	t.Cleanup(resetListFlags)

	listKind = "skill"

	var buf bytes.Buffer
	if err := runListWithWriter(&buf); err != nil {
		t.Fatalf("runListWithWriter failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "deploy") {
		t.Errorf("expected skill in output:\n%s", out)
	}
	if strings.Contains(out, "reviewer") {
		t.Errorf("agent should be filtered out:\n%s", out)
	}
}

func TestRunList_InvalidKind(t *testing.T) {
	setupLibrary(t)
	resetListFlags()
	t.Cleanup(resetListFlags)

	listKind = "gadget"

	var buf bytes.Buffer
	if err := runListWithWriter(&buf); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestRunList_JSON(t *testing.T) {
	setupLibrary(t)
	resetListFlags()
	t.Cleanup(resetListFlags)

	listJSON = true

	var buf bytes.Buffer
	if err := runListWithWriter(&buf); err != nil {
		t.Fatalf("runListWithWriter failed: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &docs); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(docs) != 4 {
		t.Errorf("expected 4 documents, got %d", len(docs))
	}
}

func TestRunList_EmptyLibrary(t *testing.T) {
	root := t.TempDir()
	orig := loadedConfig
	loadedConfig = testConfig(root)
	t.Cleanup(func() { loadedConfig = orig })
	resetListFlags()
	t.Cleanup(resetListFlags)

	var buf bytes.Buffer
	if err := runListWithWriter(&buf); err != nil {
		t.Fatalf("runListWithWriter failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No documents found.") {
		t.Errorf("expected empty-library message:\n%s", buf.String())
	}
}
