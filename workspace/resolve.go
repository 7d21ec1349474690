package workspace

import (
	"repo-link/logging"
	"repo-link/model"
)

// RevisionReader answers questions about commits without changing anything.
type RevisionReader interface {
	Resolve(rev string) (string, error)
	HasFile(rev, path string) bool
}

// ResolveSplit settles where the commit ends and the path begins when the
// commit may contain slashes. Splits are tried longest path first; the first
// one whose path is a file at that commit wins. When none is, the link comes
// back unchanged and checkout reports the problem.
func ResolveSplit(repo RevisionReader, link model.Link) model.Link {
	logger := logging.GetLogger("resolve")

	for _, split := range link.Splits() {
		if repo.HasFile(split.Commit, split.Path) {
			logger.Debug().Str("commit", split.Commit).Str("path", split.Path).Msg("Resolved link split")
			return link.WithSplit(split.Commit, split.Path)
		}
	}

	logger.Debug().Str("commit", link.Commit).Str("path", link.Path).Msg("No split names a file, keeping parsed split")
	return link
}
