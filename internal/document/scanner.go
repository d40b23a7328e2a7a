package document

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/promptly-sh/promptly/internal/config"
	"github.com/promptly-sh/promptly/internal/logging"
)

// Scanner discovers documents in prompt libraries. Per-file parse failures
// are logged and skipped so a single malformed document never hides the
// rest of the library.
type Scanner struct {
	parser *Parser
	logger *slog.Logger
}

// NewScanner creates a Scanner with a discard logger.
func NewScanner() *Scanner {
	return &Scanner{
		parser: NewParser(),
		logger: logging.NewDiscard(),
	}
}

// NewScannerWithLogger creates a Scanner that logs skipped files.
func NewScannerWithLogger(logger *slog.Logger) *Scanner {
	return &Scanner{
		parser: NewParser(),
		logger: logger,
	}
}

// Scan walks the library rooted at root and returns every document found,
// with frontmatter parsed but bodies left unloaded. The library name is
// attached to each document. A missing root yields an empty result.
func (s *Scanner) Scan(root, library string) ([]*Document, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "reading library %s", root)
	}

	var docs []*Document
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				s.logger.Warn("permission denied, skipping", "path", p)
				return fs.SkipDir
			}
			return err
		}

		if d.IsDir() {
			// Dot directories (.git, .github) hold no documents.
			if name := d.Name(); name != "." && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		doc, parseErr := s.parser.ParseHeaderFile(p, rel)
		if parseErr != nil {
			s.logger.Warn("skipping unparseable document", "path", rel, "error", parseErr)
			return nil
		}
		doc.Library = library

		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "scanning library %s", root)
	}

	return docs, nil
}

// ScanAll scans the configured remote libraries concurrently with a worker
// pool bounded by GOMAXPROCS. Libraries that fail to scan are logged and
// omitted from the result.
func (s *Scanner) ScanAll(libraries []config.LibraryConfig) ([]*Document, error) {
	if len(libraries) == 0 {
		return nil, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if len(libraries) < workers {
		workers = len(libraries)
	}

	work := make(chan config.LibraryConfig, len(libraries))
	results := make(chan []*Document, len(libraries))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for lib := range work {
				docs, err := s.Scan(lib.Path, lib.Name)
				if err != nil {
					s.logger.Warn("failed to scan library",
						"library", lib.Name,
						"path", lib.Path,
						"error", err)
					results <- nil
					continue
				}
				results <- docs
			}
		}()
	}

	for _, lib := range libraries {
		work <- lib
	}
	close(work)

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []*Document
	for docs := range results {
		all = append(all, docs...)
	}

	return all, nil
}

// LoadBody re-reads the document from disk under root and fills its body.
func (s *Scanner) LoadBody(root string, doc *Document) error {
	full, err := s.parser.ParseFile(filepath.Join(root, filepath.FromSlash(doc.Path)), doc.Path)
	if err != nil {
		return err
	}
	doc.Body = full.Body
	doc.Meta = full.Meta
	return nil
}

func openFile(path string) (*os.File, error) {
	return os.Open(path)
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
