package editor

import (
	"context"
	"io"
	"os/exec"

	"github.com/rs/zerolog"

	"repo-link/errors"
	"repo-link/logging"
)

// Launcher runs an editor attached to the given streams and waits for it.
type Launcher struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

func NewLauncher(stdin io.Reader, stdout, stderr io.Writer) *Launcher {
	return &Launcher{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: logging.GetLogger("editor"),
	}
}

// Launch opens path at line with e, running it from dir.
func (l *Launcher) Launch(ctx context.Context, e Editor, dir, path string, line int) error {
	argv := e.Command(path, line)
	logging.LogCommand(l.logger, argv[0], argv[1:])

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = l.stdin
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr

	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrEditorFailed, "%s exited with an error", e.ID).
			WithDetail("argv", argv)
	}
	return nil
}
