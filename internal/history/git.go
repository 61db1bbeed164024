package history

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// repo runs git commands against the repository in the current directory.
type repo struct {
	// git is the resolved path to the git binary.
	git string
}

// openRepo locates the git binary once so every subsequent command uses the
// same executable.
func openRepo() (*repo, error) {
	git, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("locating git binary: %w", err)
	}

	return &repo{git: git}, nil
}

// topLevel returns the absolute path of the working tree root. It doubles as
// the "is this a git repository" preflight.
func (r *repo) topLevel(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, r.git, "rev-parse", "--show-toplevel")

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git rev-parse --show-toplevel: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return strings.TrimSpace(stdout.String()), nil
}
