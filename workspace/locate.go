package workspace

import (
	"path/filepath"
	"strings"

	"repo-link/errors"
	"repo-link/helpers"
)

// Locate returns the first <parent>/<repository> that is a directory. When
// none is, the error carries errors.ErrRepositoryNotFound, the cue to clone.
func Locate(parents []string, repository string) (string, error) {
	for _, parent := range parents {
		candidate := filepath.Join(parent, repository)
		if helpers.DirExists(candidate) {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrRepositoryNotFound,
		"no clone of %s under %s", repository, strings.Join(parents, ", ")).
		WithDetail("repository", repository)
}
