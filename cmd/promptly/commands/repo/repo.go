// Package repo provides CLI commands for managing remote prompt libraries.
package repo

import (
	"github.com/spf13/cobra"
)

// Cmd is the root repo command.
var Cmd = &cobra.Command{
	Use:   "repo",
	Short: "Manage remote prompt libraries",
	Long: `Manage remote prompt libraries.

Remote libraries are Git repositories laid out like a local prompt library,
with agents/, skills/, or commands/ subdirectories. They are shallow cloned
to a local cache for discovery, search, and installation.`,
	Example: `  # Add a library
  promptly repo add https://github.com/example/prompt-library.git

  # List registered libraries
  promptly repo list

  # Update all libraries
  promptly repo update

  # Remove a library
  promptly repo remove community-prompts

  See Also:
    promptly repo add    - Add a library source
    promptly repo list   - List registered libraries
    promptly repo update - Update library caches
    promptly repo remove - Remove a library`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}
