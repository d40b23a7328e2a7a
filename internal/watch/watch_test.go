package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/promptly-sh/promptly/internal/logging"
)

func TestWatcherDeliversAfterWrite(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "agents"), 0o755); err != nil {
		t.Fatal(err)
	}

	changed := make(chan struct{}, 1)
	w := New(root, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}, WithDebounce(50*time.Millisecond), WithLogger(logging.NewDiscard()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	path := filepath.Join(root, "agents", "reviewer.md")
	if err := os.WriteFile(path, []byte("# Reviewer\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after write")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	root := t.TempDir()

	var calls atomic.Int32
	done := make(chan struct{})
	w := New(root, func() {
		if calls.Add(1) == 1 {
			close(done)
		}
	}, WithDebounce(200*time.Millisecond), WithLogger(logging.NewDiscard()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	// Burst of writes inside the debounce window.
	for i := 0; i < 5; i++ {
		path := filepath.Join(root, "guide.md")
		if err := os.WriteFile(path, []byte("# Guide\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("no callback after burst")
	}

	// Allow a stray second fire to surface before asserting.
	time.Sleep(300 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("calls = %d, want 1", got)
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	w := New(t.TempDir(), func() {}, WithLogger(logging.NewDiscard()))

	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()

	// Stop after cancel must not panic or deadlock.
	time.Sleep(50 * time.Millisecond)
	w.Stop()
}
