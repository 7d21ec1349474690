package workspace

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"repo-link/errors"
	"repo-link/helpers"
	"repo-link/logging"
	"repo-link/model"
)

// Cloner creates a working copy of url at dest.
type Cloner interface {
	Clone(ctx context.Context, url, dest string, progress io.Writer) error
}

// ClonerFunc adapts a function to Cloner.
type ClonerFunc func(ctx context.Context, url, dest string, progress io.Writer) error

func (f ClonerFunc) Clone(ctx context.Context, url, dest string, progress io.Writer) error {
	return f(ctx, url, dest, progress)
}

// Provisioner clones repositories that are not present locally.
type Provisioner struct {
	cloner       Cloner
	out          io.Writer
	showProgress bool
	logger       zerolog.Logger
}

// NewProvisioner returns a Provisioner printing notices to out. A progress
// bar is drawn only when showProgress is set.
func NewProvisioner(cloner Cloner, out io.Writer, showProgress bool) *Provisioner {
	return &Provisioner{
		cloner:       cloner,
		out:          out,
		showProgress: showProgress,
		logger:       logging.GetLogger("provisioner"),
	}
}

// Provision clones link's repository into <parent>/<repository> and returns
// that path.
func (p *Provisioner) Provision(ctx context.Context, link model.Link, parent string) (string, error) {
	dest := filepath.Join(parent, link.Repository)
	url := link.CloneURL()

	empty, err := helpers.IsEmptyDir(dest)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrCloneFailed, "cannot inspect %s", dest)
	}
	if !empty {
		return "", errors.Newf(errors.ErrCloneFailed, "cannot clone into %s: path exists and is not empty", dest).
			WithDetail("path", dest)
	}

	_, statErr := os.Stat(dest)
	created := stderrors.Is(statErr, os.ErrNotExist)

	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", errors.Wrapf(err, errors.ErrCloneFailed, "cannot create %s", parent)
	}

	helpers.Notice(p.out, "Cloning %s into %s", url, dest)
	done := logging.LogOperationStart(p.logger, "clone")

	var progress *helpers.CloneProgress
	var progressWriter io.Writer
	if p.showProgress {
		progress = helpers.NewCloneProgress(p.out)
		progressWriter = progress
	}

	err = p.cloner.Clone(ctx, url, dest, progressWriter)
	if progress != nil {
		progress.Finish()
	}
	done()

	if err != nil {
		if created {
			if rmErr := os.RemoveAll(dest); rmErr != nil {
				p.logger.Warn().Err(rmErr).Str("path", dest).Msg("Failed to remove partial clone")
			}
		}
		return "", errors.Wrapf(err, errors.ErrCloneFailed, "failed to clone %s", url).
			WithDetail("url", url)
	}

	p.logger.Info().Str("url", url).Str("dest", dest).Msg("Cloned repository")
	return dest, nil
}
