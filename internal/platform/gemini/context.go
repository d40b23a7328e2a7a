package gemini

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/pkg/fileutil"
)

// openMarkerRegex finds the opening markers of managed agent sections.
// The body is then extracted per name so an open marker only ever pairs
// with its own closing marker.
var openMarkerRegex = regexp.MustCompile(`<!-- promptly:agent:([a-z0-9-]+) -->`)

// sectionFor extracts the named agent's section body from content.
func sectionFor(content, name string) (string, bool) {
	re := regexp.MustCompile(
		`(?s)<!-- promptly:agent:` + regexp.QuoteMeta(name) + ` -->\n(.*?)\n<!-- /promptly:agent:` +
			regexp.QuoteMeta(name) + ` -->`)
	m := re.FindStringSubmatch(content)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func sectionMarkers(name string) (open, close string) {
	return fmt.Sprintf("<!-- promptly:agent:%s -->", name),
		fmt.Sprintf("<!-- /promptly:agent:%s -->", name)
}

// contextPath returns the GEMINI.md file under the configuration root.
func (p *Platform) contextPath() string {
	if p.root == "" {
		return ""
	}
	return filepath.Join(p.root, "GEMINI.md")
}

// readContext returns GEMINI.md's content, or "" when the file does
// not exist yet.
func (p *Platform) readContext() (string, error) {
	data, err := os.ReadFile(p.contextPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrap(err, "reading context file")
	}
	return string(data), nil
}

func (p *Platform) writeContext(content string) error {
	target := p.contextPath()
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteFile(target, []byte(content), 0o644)
}

// installAgentSection replaces or appends the agent's managed section.
func (p *Platform) installAgentSection(name, body string) (string, error) {
	content, err := p.readContext()
	if err != nil {
		return "", err
	}

	content = removeSection(content, name)
	open, closing := sectionMarkers(name)

	var sb strings.Builder
	sb.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		sb.WriteByte('\n')
	}
	if content != "" {
		sb.WriteByte('\n')
	}
	sb.WriteString(open)
	sb.WriteByte('\n')
	sb.WriteString(strings.TrimSpace(body))
	sb.WriteByte('\n')
	sb.WriteString(closing)
	sb.WriteByte('\n')

	if err := p.writeContext(sb.String()); err != nil {
		return "", err
	}
	return p.contextPath(), nil
}

// uninstallAgentSection removes the agent's managed section. Removing
// a section that is not present is not an error.
func (p *Platform) uninstallAgentSection(name string) error {
	content, err := p.readContext()
	if err != nil {
		return err
	}
	if content == "" {
		return nil
	}

	updated := removeSection(content, name)
	if updated == content {
		return nil
	}
	return p.writeContext(updated)
}

// agentSections returns managed agent sections keyed by name.
func (p *Platform) agentSections() (map[string]string, error) {
	content, err := p.readContext()
	if err != nil {
		return nil, err
	}

	sections := make(map[string]string)
	for _, m := range openMarkerRegex.FindAllStringSubmatch(content, -1) {
		name := m[1]
		if _, seen := sections[name]; seen {
			continue
		}
		if body, ok := sectionFor(content, name); ok {
			sections[name] = body
		}
	}
	return sections, nil
}

// removeSection drops one agent's section from the content.
func removeSection(content, name string) string {
	re := regexp.MustCompile(
		`(?s)<!-- promptly:agent:` + regexp.QuoteMeta(name) + ` -->\n.*?\n<!-- /promptly:agent:` +
			regexp.QuoteMeta(name) + ` -->\n*`)
	out := re.ReplaceAllString(content, "")
	return strings.TrimLeft(out, "\n")
}
