// Package logging provides structured logging for the promptly CLI using slog.
//
// Text output goes through a TTY-aware handler that colorizes levels and
// keys when the destination supports it; JSON output uses the standard
// [log/slog] JSON handler. A multi-handler fans records out to several
// destinations, which the root command uses for --log-file.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("scanning library", "root", root)
//
// # Context
//
// Commands place their logger on the context with [NewContext] and deeper
// layers retrieve it with [FromContext], which falls back to slog.Default.
//
// # Testing
//
// [ForTest] returns a logger wired to the test's log output:
//
//	logger := logging.ForTest(t)
//
// Values whose keys look secret-bearing (token, password, key...) are
// masked before being written; see redact.go.
package logging
