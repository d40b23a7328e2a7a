package commands

import "github.com/promptly-sh/promptly/cmd/promptly/commands/repo"

func init() {
	rootCmd.AddCommand(repo.Cmd)
}
