package lint

import (
	"path"
	"regexp"
	"strings"

	"github.com/promptly-sh/promptly/internal/document"
	"github.com/promptly-sh/promptly/internal/validator"
)

// linkRegex matches inline Markdown links and images and captures the
// target. Titles after the target are tolerated.
var linkRegex = regexp.MustCompile(`!?\[[^\]]*\]\(\s*(<[^>]*>|[^)\s]+)(?:\s+"[^"]*")?\s*\)`)

// checkLinks verifies that every relative link in the document body
// resolves to a file inside the library. External URLs, mailto links,
// and fragment-only anchors are skipped.
func (l *Linter) checkLinks(res *validator.Result, d *document.Document, files map[string]struct{}) {
	for _, target := range extractLinks(d.Body) {
		if skipTarget(target) {
			continue
		}

		resolved := resolveTarget(d.Path, target)
		if resolved == "" {
			add(res, validator.SeverityError, d, "", "link escapes the library root", target, nil)
			continue
		}
		if _, ok := files[resolved]; !ok {
			add(res, validator.SeverityError, d, "", "link target does not exist", target,
				map[string]string{"resolved": resolved})
		}
	}
}

// extractLinks returns the raw link targets in body, ignoring fenced
// code blocks.
func extractLinks(body string) []string {
	var targets []string
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
		for _, m := range linkRegex.FindAllStringSubmatch(line, -1) {
			target := strings.TrimSpace(m[1])
			target = strings.TrimPrefix(target, "<")
			target = strings.TrimSuffix(target, ">")
			if target != "" {
				targets = append(targets, target)
			}
		}
	}
	return targets
}

// skipTarget reports whether a link target is outside lint's scope.
func skipTarget(target string) bool {
	if strings.HasPrefix(target, "#") {
		return true
	}
	if strings.Contains(target, "://") {
		return true
	}
	if strings.HasPrefix(target, "mailto:") || strings.HasPrefix(target, "tel:") {
		return true
	}
	// Absolute paths point outside the library by definition.
	return strings.HasPrefix(target, "/")
}

// resolveTarget resolves target relative to the linking document and
// returns the slash path within the library, or "" when the link
// escapes the root.
func resolveTarget(docPath, target string) string {
	if i := strings.IndexAny(target, "#?"); i >= 0 {
		target = target[:i]
	}
	if target == "" {
		return ""
	}
	resolved := path.Join(path.Dir(docPath), target)
	if resolved == ".." || strings.HasPrefix(resolved, "../") {
		return ""
	}
	return resolved
}
