package commands

import (
	"bytes"
	"strings"
	"testing"
)

func resetSearchFlags() {
	searchKind = ""
	searchLibrary = ""
	searchJSON = false
	searchInteractive = false
}

func TestRunSearch_Query(t *testing.T) {
	setupLibrary(t)
	resetSearchFlags()
	t.Cleanup(resetSearchFlags)

	var buf bytes.Buffer
	if err := runSearchWithWriter(&buf, []string{"deploy"}); err != nil {
		t.Fatalf("runSearchWithWriter failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "deploy") {
		t.Errorf("expected match in output:\n%s", out)
	}
	if strings.Contains(out, "reviewer") {
		t.Errorf("unrelated document in output:\n%s", out)
	}
}

func TestRunSearch_NoQueryListsAll(t *testing.T) {
	setupLibrary(t)
	resetSearchFlags()
	t.Cleanup(resetSearchFlags)

	var buf bytes.Buffer
	if err := runSearchWithWriter(&buf, nil); err != nil {
		t.Fatalf("runSearchWithWriter failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"reviewer", "deploy", "git:commit"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunSearch_KindFilter(t *testing.T) {
	setupLibrary(t)
	resetSearchFlags()
	t.Cleanup(resetSearchFlags)

	searchKind = "command"

	var buf bytes.Buffer
	if err := runSearchWithWriter(&buf, nil); err != nil {
		t.Fatalf("runSearchWithWriter failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "git:commit") {
		t.Errorf("expected command in output:\n%s", out)
	}
	if strings.Contains(out, "deploy") {
		t.Errorf("skill should be filtered out:\n%s", out)
	}
}

func TestRunSearch_NoResults(t *testing.T) {
	setupLibrary(t)
	resetSearchFlags()
	t.Cleanup(resetSearchFlags)

	var buf bytes.Buffer
	if err := runSearchWithWriter(&buf, []string{"zzz-nothing"}); err != nil {
		t.Fatalf("runSearchWithWriter failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No documents found.") {
		t.Errorf("expected no-results message:\n%s", buf.String())
	}
}
