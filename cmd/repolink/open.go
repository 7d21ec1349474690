package repolink

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"repo-link/editor"
	"repo-link/errors"
	"repo-link/helpers"
	"repo-link/logging"
	"repo-link/model"
	"repo-link/vcs"
	"repo-link/workspace"
)

// Provisioner clones a missing repository under parent.
type Provisioner interface {
	Provision(ctx context.Context, link model.Link, parent string) (string, error)
}

// Launcher opens a file in an editor.
type Launcher interface {
	Launch(ctx context.Context, e editor.Editor, dir, path string, line int) error
}

// RepoOpener opens the working copy at dir.
type RepoOpener func(dir string) (workspace.Repository, error)

// Options configures an Opener. Nil collaborators get the real
// implementations.
type Options struct {
	Parents     []string
	Editor      string
	Out         io.Writer
	Provisioner Provisioner
	OpenRepo    RepoOpener
	Launcher    Launcher
}

// Opener drives one link from parse result to open editor.
type Opener struct {
	parents     []string
	editor      string
	out         io.Writer
	provisioner Provisioner
	openRepo    RepoOpener
	sequencer   *workspace.Sequencer
	launcher    Launcher
	logger      zerolog.Logger
}

func NewOpener(opts Options) *Opener {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	o := &Opener{
		parents:     opts.Parents,
		editor:      opts.Editor,
		out:         out,
		provisioner: opts.Provisioner,
		openRepo:    opts.OpenRepo,
		sequencer:   workspace.NewSequencer(out),
		launcher:    opts.Launcher,
		logger:      logging.GetLogger("open"),
	}

	if o.provisioner == nil {
		o.provisioner = workspace.NewProvisioner(workspace.ClonerFunc(vcs.Clone), out, helpers.IsTerminal(out))
	}
	if o.openRepo == nil {
		o.openRepo = func(dir string) (workspace.Repository, error) {
			repo, err := vcs.Open(dir)
			if err != nil {
				return nil, err
			}
			return repo, nil
		}
	}
	if o.launcher == nil {
		o.launcher = editor.NewLauncher(os.Stdin, os.Stdout, os.Stderr)
	}
	return o
}

// Open finds or clones the repository of link, checks out its commit and
// opens the file in the editor. The editor is validated before anything on
// disk changes.
func (o *Opener) Open(ctx context.Context, link model.Link) error {
	ed, err := editor.Resolve(o.editor)
	if err != nil {
		return err
	}
	if len(o.parents) == 0 {
		return errors.New(errors.ErrInternal, "no parent directories configured")
	}

	dir, err := workspace.Locate(o.parents, link.Repository)
	switch {
	case err == nil:
		o.logger.Info().Str("dir", dir).Msg("Found local clone")
	case errors.IsErrorCode(err, errors.ErrRepositoryNotFound):
		o.logger.Info().Str("repository", link.Repository).Msg("No local clone, cloning")
		dir, err = o.provisioner.Provision(ctx, link, o.parents[0])
		if err != nil {
			return err
		}
	default:
		return err
	}

	repo, err := o.openRepo(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCheckoutFailed, "%s is not a usable repository", dir)
	}

	link = workspace.ResolveSplit(repo, link)

	if _, err := o.sequencer.Checkout(ctx, repo, link.Commit); err != nil {
		return err
	}

	target := filepath.Join(dir, filepath.FromSlash(link.Path))
	if _, err := os.Stat(target); stderrors.Is(err, os.ErrNotExist) {
		o.logger.Warn().Str("path", target).Str("commit", link.Commit).Msg("File does not exist at this commit")
	}

	if link.HasLine() {
		helpers.Notice(o.out, "Opening %s:%d", target, link.Line)
	} else {
		helpers.Notice(o.out, "Opening %s", target)
	}
	return o.launcher.Launch(ctx, ed, dir, target, link.Line)
}
