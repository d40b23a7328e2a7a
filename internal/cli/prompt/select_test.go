package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/errors"
)

func docs(names ...string) []*document.Document {
	out := make([]*document.Document, len(names))
	for i, name := range names {
		out[i] = &document.Document{Kind: document.KindAgent, Name: name}
	}
	return out
}

func TestSelectDocumentEmpty(t *testing.T) {
	s := NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{})
	_, err := s.SelectDocument("x", nil)
	if !errors.Is(err, ErrNoDocuments) {
		t.Errorf("err = %v, want ErrNoDocuments", err)
	}
}

func TestSelectDocumentSingleAutoSelects(t *testing.T) {
	var out bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &out)

	got, err := s.SelectDocument("reviewer", docs("reviewer"))
	if err != nil {
		t.Fatalf("SelectDocument: %v", err)
	}
	if got.Name != "reviewer" {
		t.Errorf("selected %q", got.Name)
	}
	if out.Len() != 0 {
		t.Errorf("single match should not prompt, wrote %q", out.String())
	}
}

func TestSelectDocumentByNumber(t *testing.T) {
	var out bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader("2\n"), &out)

	got, err := s.SelectDocument("rev", docs("reviewer", "revert-helper"))
	if err != nil {
		t.Fatalf("SelectDocument: %v", err)
	}
	if got.Name != "revert-helper" {
		t.Errorf("selected %q, want revert-helper", got.Name)
	}
	if !strings.Contains(out.String(), "[2] agent/revert-helper") {
		t.Errorf("prompt output missing option: %q", out.String())
	}
}

func TestSelectDocumentDefaultsToFirst(t *testing.T) {
	s := NewSelectorWithIO(strings.NewReader("\n"), &bytes.Buffer{})
	got, err := s.SelectDocument("rev", docs("reviewer", "revert-helper"))
	if err != nil {
		t.Fatalf("SelectDocument: %v", err)
	}
	if got.Name != "reviewer" {
		t.Errorf("selected %q, want reviewer", got.Name)
	}
}

func TestSelectDocumentInvalid(t *testing.T) {
	tests := []string{"abc\n", "0\n", "3\n"}
	for _, input := range tests {
		s := NewSelectorWithIO(strings.NewReader(input), &bytes.Buffer{})
		_, err := s.SelectDocument("rev", docs("reviewer", "revert-helper"))
		if !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("input %q: err = %v, want ErrInvalidSelection", input, err)
		}
	}
}

func TestSelectDocumentCancelled(t *testing.T) {
	s := NewSelectorWithIO(strings.NewReader(""), &bytes.Buffer{})
	_, err := s.SelectDocument("rev", docs("reviewer", "revert-helper"))
	if !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("err = %v, want ErrSelectionCancelled", err)
	}
}
