package vcs

import (
	"context"
	"fmt"
	"io"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"

	"repo-link/logging"
)

// DefaultRemote is the remote a fresh clone tracks.
const DefaultRemote = "origin"

// Repo is a local working copy. Reads go through go-git; stash and checkout
// go through the git command.
type Repo struct {
	dir    string
	repo   *git.Repository
	logger zerolog.Logger
}

// Clone clones url into dest, writing the remote's progress messages to
// progress (which may be nil).
func Clone(ctx context.Context, url, dest string, progress io.Writer) error {
	logger := logging.GetLogger("vcs")
	logger.Debug().Str("url", url).Str("dest", dest).Msg("Cloning repository")

	_, err := git.PlainCloneContext(ctx, dest, false, &git.CloneOptions{
		URL:        url,
		RemoteName: DefaultRemote,
		Progress:   progress,
	})
	if err != nil {
		return fmt.Errorf("error cloning %s: %w", url, err)
	}
	return nil
}

// Open opens the working copy at dir.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("error opening repository %s: %w", dir, err)
	}
	return &Repo{
		dir:    dir,
		repo:   repo,
		logger: logging.GetLogger("vcs").With().Str("repo", dir).Logger(),
	}, nil
}

func (r *Repo) Dir() string {
	return r.dir
}

// Head returns the commit hash HEAD points at.
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("error reading HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// Resolve returns the commit hash rev names. Branches that only exist on the
// default remote resolve through their remote-tracking ref.
func (r *Repo) Resolve(rev string) (string, error) {
	var lastErr error
	for _, candidate := range []string{rev, DefaultRemote + "/" + rev} {
		hash, err := r.repo.ResolveRevision(plumbing.Revision(candidate))
		if err == nil {
			r.logger.Trace().Str("rev", rev).Str("candidate", candidate).Str("hash", hash.String()).Msg("Resolved revision")
			return hash.String(), nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("error resolving %s: %w", rev, lastErr)
}

// HasFile reports whether path is a file in the tree of rev.
func (r *Repo) HasFile(rev, path string) bool {
	hash, err := r.Resolve(rev)
	if err != nil {
		return false
	}
	commit, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return false
	}
	_, err = commit.File(path)
	return err == nil
}

// IsDirty reports uncommitted changes, untracked files included.
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("error opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("error reading status: %w", err)
	}
	return !status.IsClean(), nil
}

// Stash sets every change aside, untracked files included.
func (r *Repo) Stash(ctx context.Context, message string) error {
	_, err := runGit(ctx, r.logger, r.dir, "stash", "push", "--include-untracked", "--message", message)
	return err
}

// Checkout switches the working tree to rev.
func (r *Repo) Checkout(ctx context.Context, rev string) error {
	if rev == "" || rev[0] == '-' {
		return fmt.Errorf("refusing to check out %q", rev)
	}
	// "--" stops git from reading an unknown rev as a pathspec.
	_, err := runGit(ctx, r.logger, r.dir, "checkout", "--quiet", rev, "--")
	return err
}
