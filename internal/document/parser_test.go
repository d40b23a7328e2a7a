package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptly-sh/promptly/pkg/frontmatter"
)

const skillContent = `---
name: deploy
description: Walks through a production deploy
allowed-tools: Read Bash(git:*)
license: MIT
compatibility:
  - claude
metadata:
  version: "1.2"
---
# Deploy

Step one: check the release branch.
`

func TestParseBytesSkill(t *testing.T) {
	p := NewParser()

	doc, err := p.ParseBytes([]byte(skillContent), KindSkill, "skills/deploy/SKILL.md")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}

	if doc.Name != "deploy" {
		t.Errorf("Name = %q", doc.Name)
	}
	if doc.Meta.Description != "Walks through a production deploy" {
		t.Errorf("Description = %q", doc.Meta.Description)
	}
	if doc.Meta.AllowedTools != "Read Bash(git:*)" {
		t.Errorf("AllowedTools = %q", doc.Meta.AllowedTools)
	}
	if doc.Meta.Extra["version"] != "1.2" {
		t.Errorf("Extra = %v", doc.Meta.Extra)
	}
	if !strings.HasPrefix(doc.Body, "# Deploy") {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestParseBytesSkillRequiresFrontmatter(t *testing.T) {
	p := NewParser()

	_, err := p.ParseBytes([]byte("# No Header\n"), KindSkill, "skills/x/SKILL.md")
	if err == nil {
		t.Fatal("expected error for skill without frontmatter")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %T, want *ParseError", err)
	}
	if !errors.Is(err, frontmatter.ErrMissingFrontmatter) {
		t.Errorf("error should unwrap to ErrMissingFrontmatter, got %v", err)
	}
}

func TestParseBytesAgentOptionalFrontmatter(t *testing.T) {
	p := NewParser()

	doc, err := p.ParseBytes([]byte("# Reviewer\n\nReview the diff.\n"), KindAgent, "agents/reviewer.md")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if doc.Name != "reviewer" {
		t.Errorf("Name = %q", doc.Name)
	}
	if doc.Meta.Description != "" {
		t.Errorf("Description = %q, want empty", doc.Meta.Description)
	}
}

func TestParseBytesSkillNameOverride(t *testing.T) {
	p := NewParser()
	content := "---\nname: custom-name\ndescription: d\n---\nbody\n"

	doc, err := p.ParseBytes([]byte(content), KindSkill, "skills/dir-name/SKILL.md")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "custom-name" {
		t.Errorf("Name = %q, frontmatter should win for skills", doc.Name)
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "agents", "reviewer.md")
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "---\ndescription: Reviews pull requests\n---\n# Reviewer\n"
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewParser().ParseFile(abs, "agents/reviewer.md")
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if doc.Kind != KindAgent {
		t.Errorf("Kind = %q", doc.Kind)
	}
	if doc.Meta.Description != "Reviews pull requests" {
		t.Errorf("Description = %q", doc.Meta.Description)
	}
}

func TestParseFileNotADocument(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "run.sh")
	if err := os.WriteFile(abs, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := NewParser().ParseFile(abs, "run.sh"); err == nil {
		t.Fatal("expected error for non-Markdown file")
	}
}

func TestContentWithMeta(t *testing.T) {
	doc := &Document{
		Kind: KindSkill,
		Name: "deploy",
		Meta: Metadata{Name: "deploy", Description: "d"},
		Body: "# Deploy",
	}

	data, err := Content(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "---\n") {
		t.Errorf("content should start with frontmatter: %q", data)
	}

	// Round-trip
	got, err := NewParser().ParseBytes(data, KindSkill, "skills/deploy/SKILL.md")
	if err != nil {
		t.Fatalf("round-trip parse error = %v", err)
	}
	if got.Meta.Description != "d" || got.Body != "# Deploy" {
		t.Errorf("round-trip = %+v", got)
	}
}

func TestContentKeepsUnknownFrontmatterKeys(t *testing.T) {
	src := `---
description: Reviews a pull request
argument-hint: "[pr-number]"
disable-model-invocation: true
---
# Review
`
	doc, err := NewParser().ParseBytes([]byte(src), KindAgent, "agents/review.md")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	if got := doc.Meta.Rest["argument-hint"]; got != "[pr-number]" {
		t.Errorf("Rest[argument-hint] = %v", got)
	}

	data, err := Content(doc)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "argument-hint: '[pr-number]'") &&
		!strings.Contains(out, `argument-hint: "[pr-number]"`) {
		t.Errorf("argument-hint lost on rewrite:\n%s", out)
	}
	if !strings.Contains(out, "disable-model-invocation: true") {
		t.Errorf("disable-model-invocation lost on rewrite:\n%s", out)
	}

	// Unknown keys stay unknown on the next parse.
	again, err := NewParser().ParseBytes(data, KindAgent, "agents/review.md")
	if err != nil {
		t.Fatalf("round-trip parse error = %v", err)
	}
	if len(again.Meta.Rest) != 2 {
		t.Errorf("Rest = %v, want 2 preserved keys", again.Meta.Rest)
	}
}

func TestContentWithoutMeta(t *testing.T) {
	doc := &Document{Kind: KindGuide, Name: "README", Body: "# Readme"}

	data, err := Content(doc)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "---") {
		t.Errorf("plain document should have no frontmatter: %q", data)
	}
	if string(data) != "# Readme\n" {
		t.Errorf("content = %q", data)
	}
}

func TestWriteFileCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "commands", "git", "commit.md")

	doc := &Document{Kind: KindCommand, Name: "git:commit", Body: "Commit helper."}
	if err := WriteFile(doc, abs); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Commit helper.\n" {
		t.Errorf("content = %q", data)
	}
}

func TestParseHeaderFile(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "SKILL.md")
	if err := os.WriteFile(abs, []byte(skillContent), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := NewParser().ParseHeaderFile(abs, "skills/deploy/SKILL.md")
	if err != nil {
		t.Fatalf("ParseHeaderFile() error = %v", err)
	}
	if doc.Meta.Description == "" {
		t.Error("header meta should be parsed")
	}
	if doc.Body != "" {
		t.Errorf("Body = %q, want empty for header-only parse", doc.Body)
	}
}
