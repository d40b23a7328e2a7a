// Package git wraps the git CLI for cloning and updating prompt
// libraries.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/promptly-sh/promptly/internal/errors"
)

// IsURL returns true if s looks like a git repository URL. It checks
// for URLs containing "://", URLs ending with ".git", and SSH-style
// URLs starting with "git@".
func IsURL(s string) bool {
	if strings.Contains(s, "://") {
		return true
	}
	if strings.HasSuffix(s, ".git") {
		return true
	}
	return strings.HasPrefix(s, "git@")
}

// Clone clones url to dest with the given depth. Output streams to the
// terminal and stdin stays connected so interactive authentication
// (SSH passphrases, credential prompts) works.
func Clone(url, dest string, depth int) error {
	cmd := exec.Command("git", "clone", fmt.Sprintf("--depth=%d", depth), url, dest)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "git clone failed")
	}
	return nil
}

// Pull performs a fast-forward-only pull in repoPath. Output streams
// to the terminal like Clone.
func Pull(repoPath string) error {
	cmd := exec.Command("git", "-C", repoPath, "pull", "--ff-only")
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrap(err, "git pull failed")
	}
	return nil
}

// Installed reports whether the git binary is on PATH.
func Installed() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// ValidateClone checks that repoPath holds a git repository by looking
// for its .git directory.
func ValidateClone(repoPath string) error {
	gitDir := filepath.Join(repoPath, ".git")
	info, err := os.Stat(gitDir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf("not a git repository: %s", repoPath)
		}
		return errors.Wrap(err, "checking git directory")
	}
	if !info.IsDir() {
		return errors.Newf(".git is not a directory: %s", gitDir)
	}
	return nil
}
