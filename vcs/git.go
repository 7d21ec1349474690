package vcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"repo-link/logging"
)

// ErrGitNotFound is returned when the git command is not on PATH.
var ErrGitNotFound = errors.New("git executable not found in PATH")

// runGit runs git in dir and returns its stdout. A non-zero exit becomes an
// error carrying git's stderr.
func runGit(ctx context.Context, logger zerolog.Logger, dir string, args ...string) (string, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return "", ErrGitNotFound
	}

	logging.LogCommand(logger, gitPath, args)

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		stderr := strings.TrimSpace(errBuf.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr != "" {
			return "", fmt.Errorf("git %s: %s", args[0], stderr)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}

	return outBuf.String(), nil
}
