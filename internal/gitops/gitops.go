package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits ledger changes.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	if _, err := git(dir, "init", "--quiet"); err != nil {
		return err
	}
	return nil
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(dir, message string, author Author) (string, error) {
	if _, err := git(dir, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := git(dir, "commit", "--quiet", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}
	return git(dir, "rev-parse", "--short", "HEAD")
}

// CommitPaths stages only paths (relative to dir) and commits them.
// It is a no-op returning "" when dir is not a git repository.
func CommitPaths(dir, message string, author Author, paths ...string) (string, error) {
	if !IsRepo(dir) {
		return "", nil
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := git(dir, args...); err != nil {
		return "", err
	}
	if _, err := git(dir, "commit", "--quiet", "-m", message, "--author", author.String()); err != nil {
		return "", err
	}
	return git(dir, "rev-parse", "--short", "HEAD")
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// git runs a git subcommand in dir and returns its trimmed stdout.
func git(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	// Commits need a committer identity even when --author is given.
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME=tripsplit",
		"GIT_COMMITTER_EMAIL=ledger@tripsplit.dev",
	)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return strings.TrimSpace(string(out)), nil
}
