package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatText, Output: &buf})

	logger.Info("scanning library", "root", "/tmp/lib")

	out := buf.String()
	if !strings.Contains(out, "scanning library") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "root=/tmp/lib") {
		t.Errorf("output missing attr: %q", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("parsed", "kind", "skill")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if rec["msg"] != "parsed" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["kind"] != "skill" {
		t.Errorf("kind = %v", rec["kind"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("should be dropped")
	logger.Warn("should appear")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Error("Info record leaked through Warn-level logger")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("Warn record missing")
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		v    int
		want slog.Level
	}{
		{0, slog.LevelInfo},
		{1, slog.LevelDebug},
		{2, slog.LevelDebug - 4},
		{5, slog.LevelDebug - 4},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.v); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	base := NewHandler(&buf, nil)
	logger := slog.New(base.WithAttrs([]slog.Attr{slog.String("component", "scanner")}))

	logger.Info("done")

	if !strings.Contains(buf.String(), "component=scanner") {
		t.Errorf("output missing preset attr: %q", buf.String())
	}
}

func TestHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil).WithGroup("repo"))

	logger.Info("cloned", "name", "shared-prompts")

	if !strings.Contains(buf.String(), "repo.name=shared-prompts") {
		t.Errorf("output missing grouped attr: %q", buf.String())
	}
}

func TestHandlerMasksSecrets(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("auth", "api_token", "supersecretvalue")

	out := buf.String()
	if strings.Contains(out, "supersecretvalue") {
		t.Errorf("secret leaked: %q", out)
	}
	if !strings.Contains(out, "****") {
		t.Errorf("expected mask in output: %q", out)
	}
}

func TestHandlerMasksTokenValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil))

	logger.Info("remote", "url_param", "ghp_abcdef1234567890")

	if strings.Contains(buf.String(), "ghp_abcdef1234567890") {
		t.Errorf("token value leaked: %q", buf.String())
	}
}

func TestMultiHandlerFanOut(t *testing.T) {
	var a, b bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	))

	logger.Info("fan out")

	if !strings.Contains(a.String(), "fan out") {
		t.Error("first handler missed the record")
	}
	if !strings.Contains(b.String(), "fan out") {
		t.Error("second handler missed the record")
	}
}

func TestMultiHandlerRespectsLevels(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	logger := slog.New(NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	))

	logger.Debug("noisy detail")

	if !strings.Contains(debugBuf.String(), "noisy detail") {
		t.Error("debug handler should receive debug records")
	}
	if warnBuf.Len() != 0 {
		t.Error("warn handler should not receive debug records")
	}
}

func TestContextRoundTrip(t *testing.T) {
	logger := NewDiscard()
	ctx := NewContext(context.Background(), logger)

	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the stored logger")
	}
}

func TestFromContextFallback(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext should fall back to slog.Default")
	}
	if FromContext(nil) == nil { //nolint:staticcheck // exercising the nil path
		t.Error("FromContext(nil) should fall back to slog.Default")
	}
}
