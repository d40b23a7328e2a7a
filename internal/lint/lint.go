package lint

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/toolperm"
	"github.com/promptly-sh/promptly/internal/validator"
)

const (
	// maxNameLength is the maximum allowed length for document names.
	maxNameLength = 64

	// maxDescriptionLength bounds frontmatter descriptions. Longer
	// descriptions get truncated by most host platforms.
	maxDescriptionLength = 1024
)

// nameRegex validates document names: lowercase alphanumeric, single
// hyphens between segments, no start/end hyphen, no consecutive hyphens.
var nameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Option configures a Linter.
type Option func(*Linter)

// WithStrict enables strict mode. In strict mode allowed-tools syntax
// is validated with the toolperm parser and agents without a
// description are flagged.
func WithStrict(strict bool) Option {
	return func(l *Linter) {
		l.strict = strict
	}
}

// Linter checks documents against the library layout conventions.
type Linter struct {
	toolParser *toolperm.Parser
	scanner    *document.Scanner
	strict     bool
}

// New creates a Linter with the given options.
func New(opts ...Option) *Linter {
	l := &Linter{
		toolParser: toolperm.New(),
		scanner:    document.NewScanner(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Document checks a single document. The document's body must be
// loaded. Cross-references are not checked here; use Library for that.
func (l *Linter) Document(d *document.Document) *validator.Result {
	res := &validator.Result{}
	l.checkName(res, d)
	l.checkDescription(res, d)
	l.checkAllowedTools(res, d)
	l.checkBody(res, d)
	return res
}

// Library lints every document under root and verifies that relative
// Markdown links resolve to files inside the library. The library name
// is used only for issue attribution.
func (l *Linter) Library(root, library string) (*validator.Result, error) {
	docs, err := l.scanner.Scan(root, library)
	if err != nil {
		return nil, err
	}

	files, err := collectFiles(root)
	if err != nil {
		return nil, err
	}

	res := &validator.Result{}
	for _, d := range docs {
		if err := l.scanner.LoadBody(root, d); err != nil {
			res.Add(validator.Issue{
				Severity: validator.SeverityError,
				Path:     d.Path,
				Message:  fmt.Sprintf("cannot read document: %v", err),
			})
			continue
		}
		res.Merge(l.Document(d))
		l.checkLinks(res, d, files)
	}
	return res, nil
}

func (l *Linter) checkName(res *validator.Result, d *document.Document) {
	name := d.Name
	if name == "" {
		add(res, validator.SeverityError, d, "name", "name is required", nil, nil)
		return
	}

	if len(name) > maxNameLength {
		add(res, validator.SeverityError, d, "name",
			fmt.Sprintf("name exceeds maximum length of %d characters", maxNameLength), name, nil)
	}

	// Guide and command names carry path separators; check the segments.
	for _, seg := range strings.FieldsFunc(name, func(r rune) bool {
		return r == ':' || r == '/'
	}) {
		if !nameRegex.MatchString(seg) {
			msg := "name must be lowercase alphanumeric with single hyphens between segments"
			if strings.HasPrefix(seg, "-") || strings.HasSuffix(seg, "-") {
				msg = "name cannot start or end with a hyphen"
			} else if strings.Contains(seg, "--") {
				msg = "name cannot contain consecutive hyphens"
			} else if strings.ToLower(seg) != seg {
				msg = "name must be lowercase"
			}
			sev := validator.SeverityError
			if d.Kind == document.KindGuide {
				sev = validator.SeverityWarning
			}
			add(res, sev, d, "name", msg, name, nil)
			break
		}
	}

	if d.Kind == document.KindSkill {
		dir := path.Base(path.Dir(d.Path))
		if dir != name {
			add(res, validator.SeverityError, d, "name",
				"skill name must match directory name", name,
				map[string]string{"directory": dir})
		}
	}
}

func (l *Linter) checkDescription(res *validator.Result, d *document.Document) {
	desc := d.Meta.Description
	if desc == "" {
		switch {
		case d.Kind == document.KindSkill:
			add(res, validator.SeverityError, d, "description", "description is required", nil, nil)
		case d.Kind == document.KindAgent && l.strict:
			add(res, validator.SeverityWarning, d, "description", "agent has no description", nil, nil)
		}
		return
	}

	if strings.TrimSpace(desc) == "" {
		add(res, validator.SeverityError, d, "description",
			"description cannot be only whitespace", desc, nil)
	}
	if len(desc) > maxDescriptionLength {
		add(res, validator.SeverityWarning, d, "description",
			fmt.Sprintf("description exceeds %d characters", maxDescriptionLength), nil, nil)
	}
}

func (l *Linter) checkAllowedTools(res *validator.Result, d *document.Document) {
	if !l.strict || d.Meta.AllowedTools == "" {
		return
	}
	perms, err := l.toolParser.Parse(d.Meta.AllowedTools)
	if err != nil {
		add(res, validator.SeverityError, d, "allowed-tools", err.Error(), d.Meta.AllowedTools, nil)
		return
	}
	for _, perm := range perms {
		if !toolperm.Known(perm.Name) {
			add(res, validator.SeverityWarning, d, "allowed-tools",
				fmt.Sprintf("unknown tool %q", perm.Name), perm.String(), nil)
		}
	}
}

func (l *Linter) checkBody(res *validator.Result, d *document.Document) {
	if strings.TrimSpace(d.Body) == "" {
		add(res, validator.SeverityError, d, "", "document body is empty", nil, nil)
		return
	}
	// A frontmatter name counts as a title; only warn when both are absent.
	if !hasHeading(d.Body) && d.Meta.Name == "" {
		add(res, validator.SeverityWarning, d, "", "document has no H1 title or frontmatter name", nil, nil)
	}
}

// hasHeading reports whether the body contains an H1 outside fenced
// code blocks.
func hasHeading(body string) bool {
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(trimmed, "# ") {
			return true
		}
	}
	return false
}

// collectFiles walks root and returns the set of slash-relative file
// paths, skipping dot directories. Link targets are checked against it.
func collectFiles(root string) (map[string]struct{}, error) {
	files := make(map[string]struct{})
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if p != root && strings.HasPrefix(entry.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = struct{}{}
		return nil
	})
	if os.IsNotExist(err) {
		return files, nil
	}
	return files, err
}

func add(res *validator.Result, sev validator.Severity, d *document.Document, field, msg string, value any, ctx map[string]string) {
	res.Add(validator.Issue{
		Severity: sev,
		Path:     d.Path,
		Field:    field,
		Message:  msg,
		Value:    value,
		Context:  ctx,
	})
}
