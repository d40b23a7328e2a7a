package gemini

// Command is the TOML representation of a Gemini CLI slash command.
// The name is carried by the file path, not the file content.
type Command struct {
	Name        string `toml:"-"`
	Description string `toml:"description,omitempty"`
	Prompt      string `toml:"prompt,multiline"`
}
