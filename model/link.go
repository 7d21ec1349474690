package model

import (
	"fmt"
	"strings"
)

// Link holds the parsed components of a blob link
type Link struct {
	HostBase   string
	User       string
	Repository string
	Commit     string
	Path       string
	// Line is 1-based; zero means the link carried no line anchor.
	Line int
}

func (l Link) HasLine() bool {
	return l.Line > 0
}

// CloneURL returns the repository URL the link points into.
func (l Link) CloneURL() string {
	return fmt.Sprintf("%s/%s/%s", l.HostBase, l.User, l.Repository)
}

// String re-serializes the link in blob form.
func (l Link) String() string {
	s := fmt.Sprintf("%s/blob/%s/%s", l.CloneURL(), l.Commit, l.Path)
	if l.HasLine() {
		s += fmt.Sprintf("#L%d", l.Line)
	}
	return s
}

// WithSplit returns a copy of the link with commit and path replaced.
func (l Link) WithSplit(commit, path string) Link {
	l.Commit = commit
	l.Path = path
	return l
}

// Split is one way to divide "<commit>/<path>" at a slash.
type Split struct {
	Commit string
	Path   string
}

// Splits lists every commit/path division of the link, longest path first.
// The first entry is the split with no slash in the commit.
func (l Link) Splits() []Split {
	parts := strings.Split(l.Commit+"/"+l.Path, "/")
	splits := make([]Split, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		commit := strings.Join(parts[:i], "/")
		path := strings.Join(parts[i:], "/")
		if commit == "" || path == "" {
			continue
		}
		splits = append(splits, Split{Commit: commit, Path: path})
	}
	return splits
}
