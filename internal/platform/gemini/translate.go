package gemini

import (
	"regexp"
	"strings"

	"github.com/promptly-sh/promptly/internal/errors"
)

// VarArguments is the canonical placeholder for command arguments.
const VarArguments = "$ARGUMENTS"

// platformVars maps canonical placeholders to Gemini CLI syntax.
var platformVars = map[string]string{
	VarArguments: "{{args}}",
}

// canonicalVars maps Gemini CLI placeholders back to canonical syntax.
// {{argument}} appears in older Gemini CLI configs.
var canonicalVars = map[string]string{
	"{{args}}":     VarArguments,
	"{{argument}}": VarArguments,
}

// varPattern matches canonical placeholder syntax: $ followed by
// uppercase letters and underscores.
var varPattern = regexp.MustCompile(`\$[A-Z][A-Z_]+\b`)

// ErrUnsupportedVariable indicates content uses placeholders Gemini CLI
// has no equivalent for.
var ErrUnsupportedVariable = errors.New("unsupported variable")

// TranslateVariables converts canonical placeholder syntax to Gemini
// CLI format: $ARGUMENTS -> {{args}}.
func TranslateVariables(content string) string {
	result := content
	for can, plat := range platformVars {
		result = strings.ReplaceAll(result, can, plat)
	}
	return result
}

// TranslateToCanonical converts Gemini CLI placeholder syntax back to
// canonical format: {{args}} -> $ARGUMENTS.
func TranslateToCanonical(content string) string {
	result := content
	for plat, can := range canonicalVars {
		result = strings.ReplaceAll(result, plat, can)
	}
	return result
}

// ValidateVariables checks that content only uses placeholders Gemini
// CLI supports.
func ValidateVariables(content string) error {
	var unsupported []string
	seen := make(map[string]struct{})

	for _, v := range varPattern.FindAllString(content, -1) {
		if _, ok := platformVars[v]; ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		unsupported = append(unsupported, v)
	}

	if len(unsupported) == 0 {
		return nil
	}
	return errors.Wrapf(ErrUnsupportedVariable, "%s", strings.Join(unsupported, ", "))
}
