package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/promptly-sh/promptly/pkg/fileutil"
	"github.com/promptly-sh/promptly/pkg/frontmatter"
)

// ParseError represents a failure to parse a document file.
type ParseError struct {
	Path string // file that failed to parse
	Err  error  // underlying error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("parsing document: %v", e.Err)
	}
	return fmt.Sprintf("parsing document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parser parses library files into Documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses the file at absPath. rel is the
// library-relative slash path used for classification and naming.
func (p *Parser) ParseFile(absPath, rel string) (*Document, error) {
	kind, ok := KindForPath(rel)
	if !ok {
		return nil, &ParseError{Path: rel, Err: fmt.Errorf("not a document: %s", rel)}
	}

	data, err := fileutil.ReadFileBounded(absPath)
	if err != nil {
		return nil, &ParseError{Path: rel, Err: err}
	}

	return p.ParseBytes(data, kind, rel)
}

// ParseBytes parses document content. Frontmatter is required for skills
// and optional for everything else.
func (p *Parser) ParseBytes(data []byte, kind Kind, rel string) (*Document, error) {
	doc := &Document{
		Kind: kind,
		Path: rel,
	}

	var body []byte
	var err error
	if kind == KindSkill {
		body, err = frontmatter.MustParse(bytes.NewReader(data), &doc.Meta)
	} else {
		body, err = frontmatter.Parse(bytes.NewReader(data), &doc.Meta)
	}
	if err != nil {
		return nil, &ParseError{Path: rel, Err: err}
	}

	doc.Body = strings.TrimSpace(string(body))
	doc.Name = NameForPath(kind, rel)
	// Frontmatter names win for skills, where the field is authoritative.
	if kind == KindSkill && doc.Meta.Name != "" {
		doc.Name = doc.Meta.Name
	}

	return doc, nil
}

// ParseHeaderFile reads only the frontmatter of the file at absPath.
// The returned document has an empty body; listings use this to stay cheap.
func (p *Parser) ParseHeaderFile(absPath, rel string) (*Document, error) {
	kind, ok := KindForPath(rel)
	if !ok {
		return nil, &ParseError{Path: rel, Err: fmt.Errorf("not a document: %s", rel)}
	}

	doc := &Document{
		Kind: kind,
		Path: rel,
		Name: NameForPath(kind, rel),
	}

	f, err := openFile(absPath)
	if err != nil {
		return nil, &ParseError{Path: rel, Err: err}
	}
	defer f.Close()

	if err := frontmatter.ParseHeader(f, &doc.Meta); err != nil {
		return nil, &ParseError{Path: rel, Err: err}
	}
	if kind == KindSkill && doc.Meta.Name != "" {
		doc.Name = doc.Meta.Name
	}

	return doc, nil
}

// Content renders the document back to its on-disk form. Documents without
// any metadata are written as plain Markdown without a frontmatter block.
func Content(d *Document) ([]byte, error) {
	if isZeroMeta(d.Meta) {
		body := d.Body
		if body != "" && !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		return []byte(body), nil
	}
	return frontmatter.Format(d.Meta, d.Body)
}

// WriteFile writes the document to absPath atomically, creating parent
// directories as needed.
func WriteFile(d *Document, absPath string) error {
	content, err := Content(d)
	if err != nil {
		return err
	}
	if err := ensureDir(filepath.Dir(absPath)); err != nil {
		return err
	}
	return fileutil.AtomicWriteFile(absPath, content, 0o644)
}

func isZeroMeta(m Metadata) bool {
	return m.Name == "" && m.Description == "" && m.AllowedTools == "" &&
		m.Model == "" && m.License == "" && len(m.Compatibility) == 0 &&
		len(m.Extra) == 0 && len(m.Rest) == 0
}
