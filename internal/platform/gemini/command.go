package gemini

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/promptly-sh/promptly/internal/errors"
	"github.com/promptly-sh/promptly/pkg/fileutil"
)

// commandPath maps a canonical command name to its TOML file.
// Namespaces become nested directories: git:commit -> git/commit.toml.
func (p *Platform) commandPath(name string) string {
	if p.root == "" || name == "" {
		return ""
	}
	rel := strings.ReplaceAll(name, ":", string(filepath.Separator))
	return filepath.Join(p.root, "commands", rel+".toml")
}

// installCommand writes the command TOML with translated placeholders.
func (p *Platform) installCommand(c *Command) (string, error) {
	if c == nil || c.Name == "" {
		return "", errors.ErrMissingName
	}
	if err := ValidateVariables(c.Prompt); err != nil {
		return "", err
	}

	out := *c
	out.Prompt = TranslateVariables(c.Prompt)

	data, err := toml.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "marshaling command to TOML")
	}
	data = forceMultilinePrompt(data, out.Prompt)

	target := p.commandPath(c.Name)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", errors.Wrap(err, "creating commands directory")
	}
	if err := fileutil.AtomicWriteFile(target, data, 0o644); err != nil {
		return "", errors.Wrap(err, "writing command file")
	}
	return target, nil
}

// forceMultilinePrompt rewrites the prompt field as a triple-quoted
// string. go-toml v2 does not honor the multiline tag when marshaling
// a struct, which makes long prompts unreadable on one line.
func forceMultilinePrompt(data []byte, prompt string) []byte {
	if !strings.Contains(prompt, "\n") ||
		strings.Contains(prompt, `"""`) || strings.Contains(prompt, `\`) {
		return data
	}

	single, err := toml.Marshal(struct {
		Prompt string `toml:"prompt"`
	}{prompt})
	if err != nil {
		return data
	}
	singleField := strings.TrimRight(string(single), "\n")

	multi := prompt
	if !strings.HasSuffix(multi, "\n") {
		multi += "\n"
	}
	multiField := "prompt = \"\"\"\n" + multi + "\"\"\""

	return []byte(strings.Replace(string(data), singleField, multiField, 1))
}

// readCommand loads a command file and converts placeholders back to
// canonical form.
func (p *Platform) readCommand(name string) (*Command, error) {
	target := p.commandPath(name)
	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(errors.ErrNotFound, "command %q", name)
		}
		return nil, errors.Wrap(err, "reading command file")
	}

	var cmd Command
	if err := toml.Unmarshal(data, &cmd); err != nil {
		return nil, errors.Wrapf(err, "unmarshaling command %q", name)
	}
	cmd.Name = name
	cmd.Prompt = TranslateToCanonical(cmd.Prompt)
	return &cmd, nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// listCommandNames returns canonical names of installed commands.
func (p *Platform) listCommandNames() ([]string, []string, error) {
	dir := filepath.Join(p.root, "commands")
	var names, files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), ".toml")
		names = append(names, strings.ReplaceAll(name, "/", ":"))
		files = append(files, path)
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, errors.Wrap(err, "walking commands directory")
	}
	return names, files, nil
}
