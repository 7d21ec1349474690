package workspace

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"repo-link/errors"
	"repo-link/helpers"
	"repo-link/logging"
)

// State is where a working copy stands relative to a checkout target.
type State int

const (
	// AtTarget means HEAD already is the target commit.
	AtTarget State = iota
	// Clean means HEAD differs and there is nothing to set aside.
	Clean
	// Dirty means HEAD differs and changes must be stashed first.
	Dirty
)

func (s State) String() string {
	switch s {
	case AtTarget:
		return "at-target"
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	default:
		return "unknown"
	}
}

// Repository is the working copy the sequencer drives.
type Repository interface {
	RevisionReader
	Dir() string
	Head() (string, error)
	IsDirty() (bool, error)
	Stash(ctx context.Context, message string) error
	Checkout(ctx context.Context, rev string) error
}

// Sequencer brings a working copy to a target revision, stashing local
// changes when needed. Stashes are never restored.
type Sequencer struct {
	out    io.Writer
	logger zerolog.Logger
}

func NewSequencer(out io.Writer) *Sequencer {
	return &Sequencer{
		out:    out,
		logger: logging.GetLogger("checkout"),
	}
}

// Inspect reports the state of repo relative to rev without changing it.
func (s *Sequencer) Inspect(repo Repository, rev string) (State, error) {
	target, err := repo.Resolve(rev)
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrCheckoutFailed,
			"%s does not exist in %s (fetch it and try again)", rev, repo.Dir()).
			WithDetail("rev", rev)
	}

	head, err := repo.Head()
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrCheckoutFailed, "cannot read HEAD of %s", repo.Dir())
	}
	if head == target {
		return AtTarget, nil
	}

	dirty, err := repo.IsDirty()
	if err != nil {
		return 0, errors.Wrapf(err, errors.ErrCheckoutFailed, "cannot read status of %s", repo.Dir())
	}
	if dirty {
		return Dirty, nil
	}
	return Clean, nil
}

// Checkout moves repo to rev and returns the state it started from.
func (s *Sequencer) Checkout(ctx context.Context, repo Repository, rev string) (State, error) {
	state, err := s.Inspect(repo, rev)
	if err != nil {
		return state, err
	}

	s.logger.Debug().Str("repo", repo.Dir()).Str("rev", rev).Stringer("state", state).Msg("Checkout state")

	switch state {
	case AtTarget:
		return state, nil
	case Dirty:
		helpers.Warn(s.out, "Stashing uncommitted changes in %s (restore with `git stash pop`)", repo.Dir())
		if err := repo.Stash(ctx, "repo-link: before checking out "+rev); err != nil {
			return state, errors.Wrapf(err, errors.ErrCheckoutFailed, "cannot stash changes in %s", repo.Dir())
		}
	}

	if err := repo.Checkout(ctx, rev); err != nil {
		return state, errors.Wrapf(err, errors.ErrCheckoutFailed, "cannot check out %s in %s", rev, repo.Dir()).
			WithDetail("rev", rev)
	}

	s.logger.Info().Str("repo", repo.Dir()).Str("rev", rev).Msg("Checked out")
	return state, nil
}
