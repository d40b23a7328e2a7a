package toolperm

import (
	"fmt"

	"github.com/promptly-sh/promptly/internal/errors"
)

// ToolPermError represents an error in tool permission syntax.
type ToolPermError struct {
	Token   string // the problematic token
	Message string // description of the error
}

func (e *ToolPermError) Error() string {
	if e.Token == "" {
		return "tool permission error: " + e.Message
	}
	return fmt.Sprintf("invalid tool permission %q: %s", e.Token, e.Message)
}

// Unwrap lets callers match any syntax failure with errors.Is against
// errors.ErrInvalidToolSyntax.
func (e *ToolPermError) Unwrap() error {
	return errors.ErrInvalidToolSyntax
}
