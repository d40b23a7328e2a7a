package editor

import "testing"

func TestDetectEditorPrefersEditorEnv(t *testing.T) {
	t.Setenv("EDITOR", "myeditor")
	t.Setenv("VISUAL", "othereditor")
	if got := detectEditor(); got != "myeditor" {
		t.Errorf("detectEditor = %q, want myeditor", got)
	}
}

func TestDetectEditorFallsBackToVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "othereditor")
	if got := detectEditor(); got != "othereditor" {
		t.Errorf("detectEditor = %q, want othereditor", got)
	}
}

func TestDetectEditorFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	got := detectEditor()
	if got != "nano" && got != "vi" {
		t.Errorf("detectEditor = %q, want nano or vi", got)
	}
}
