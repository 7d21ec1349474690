package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-link/errors"
	"repo-link/model"
	"repo-link/parse"
)

func TestParseLink(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected model.Link
	}{
		{
			name: "file with line",
			link: "https://github.com/erikrose/more-itertools/blob/master/more_itertools/recipes.py#L74",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "erikrose",
				Repository: "more-itertools",
				Commit:     "master",
				Path:       "more_itertools/recipes.py",
				Line:       74,
			},
		},
		{
			name: "no line number",
			link: "https://github.com/thepracticaldev/dev.to/blob/master/.gitdocs.js",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "thepracticaldev",
				Repository: "dev.to",
				Commit:     "master",
				Path:       ".gitdocs.js",
			},
		},
		{
			name: "branch with slash takes first segment as commit",
			link: "https://github.com/thepracticaldev/dev.to/blob/ben/fix-js-for-comment-creation/.gitdocs.js",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "thepracticaldev",
				Repository: "dev.to",
				Commit:     "ben",
				Path:       "fix-js-for-comment-creation/.gitdocs.js",
			},
		},
		{
			name: "commit hash",
			link: "https://github.com/owner/repo/blob/3f2a9c1d/src/main.go#L1",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "owner",
				Repository: "repo",
				Commit:     "3f2a9c1d",
				Path:       "src/main.go",
				Line:       1,
			},
		},
		{
			name: "line range keeps the start line",
			link: "https://github.com/owner/repo/blob/v1.2.0/lib/a.rb#L10-L20",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "owner",
				Repository: "repo",
				Commit:     "v1.2.0",
				Path:       "lib/a.rb",
				Line:       10,
			},
		},
		{
			name: "column anchor keeps the line",
			link: "https://github.com/erikrose/more-itertools/blob/master/more_itertools/recipes.py#L74C5",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "erikrose",
				Repository: "more-itertools",
				Commit:     "master",
				Path:       "more_itertools/recipes.py",
				Line:       74,
			},
		},
		{
			name: "column range keeps the start line",
			link: "https://github.com/erikrose/more-itertools/blob/master/more_itertools/recipes.py#L74C5-L80C12",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "erikrose",
				Repository: "more-itertools",
				Commit:     "master",
				Path:       "more_itertools/recipes.py",
				Line:       74,
			},
		},
		{
			name: "escaped path and query string",
			link: "https://github.com/user/proj/blob/main/docs%20%26%20resources/intro.md?plain=1#L7",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "user",
				Repository: "proj",
				Commit:     "main",
				Path:       "docs & resources/intro.md",
				Line:       7,
			},
		},
		{
			name: "non-line fragment is ignored",
			link: "https://github.com/owner/repo/blob/main/README.md#installation",
			expected: model.Link{
				HostBase:   "https://github.com",
				User:       "owner",
				Repository: "repo",
				Commit:     "main",
				Path:       "README.md",
			},
		},
		{
			name: "host is lowercased and port kept",
			link: "http://Git.Example.com:8080/team/tool/blob/main/cmd/tool.go#L3",
			expected: model.Link{
				HostBase:   "http://git.example.com:8080",
				User:       "team",
				Repository: "tool",
				Commit:     "main",
				Path:       "cmd/tool.go",
				Line:       3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := parse.ParseLink(tt.link)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, link)
		})
	}
}

func TestParseLinkMalformed(t *testing.T) {
	tests := []struct {
		name string
		link string
	}{
		{name: "empty", link: ""},
		{name: "not a url", link: "invalid-url"},
		{name: "tree link", link: "https://github.com/owner/repo/tree/main/dir"},
		{name: "repository root", link: "https://github.com/owner/repo"},
		{name: "missing path", link: "https://github.com/owner/repo/blob/main/"},
		{name: "missing scheme", link: "github.com/owner/repo/blob/main/a.go"},
		{name: "ftp scheme", link: "ftp://github.com/owner/repo/blob/main/a.go"},
		{name: "zero line", link: "https://github.com/owner/repo/blob/main/a.go#L0"},
		{name: "garbage line", link: "https://github.com/owner/repo/blob/main/a.go#L12abc"},
		{name: "column without number", link: "https://github.com/owner/repo/blob/main/a.go#L74C"},
		{name: "column without line", link: "https://github.com/owner/repo/blob/main/a.go#LC5"},
		{name: "parent segment", link: "https://github.com/owner/repo/blob/main/../../etc/passwd"},
		{name: "dot repository", link: "https://github.com/owner/../blob/main/a.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, err := parse.ParseLink(tt.link)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMalformedLink), "got %v", err)
			assert.Equal(t, model.Link{}, link)
		})
	}
}

func TestParseLinkRoundTrip(t *testing.T) {
	links := []string{
		"https://github.com/erikrose/more-itertools/blob/master/more_itertools/recipes.py#L74",
		"https://github.com/thepracticaldev/dev.to/blob/master/.gitdocs.js",
		"https://github.com/owner/repo/blob/0a1b2c3/deep/nested/file.txt#L1",
	}

	for _, raw := range links {
		t.Run(raw, func(t *testing.T) {
			link, err := parse.ParseLink(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, link.String())

			again, err := parse.ParseLink(link.String())
			require.NoError(t, err)
			assert.Equal(t, link, again)
		})
	}
}

func TestParseLinkIdempotent(t *testing.T) {
	raw := "https://github.com/erikrose/more-itertools/blob/master/more_itertools/recipes.py#L74"

	first, err1 := parse.ParseLink(raw)
	second, err2 := parse.ParseLink(raw)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestParseLinkMissingLine(t *testing.T) {
	link, err := parse.ParseLink("https://github.com/thepracticaldev/dev.to/blob/master/.gitdocs.js")
	require.NoError(t, err)

	assert.False(t, link.HasLine())
	assert.Zero(t, link.Line)
}

func TestParseLinkErrorMessage(t *testing.T) {
	_, err := parse.ParseLink("https://github.com/owner/repo/tree/main/dir")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "invalid blob link: https://github.com/owner/repo/tree/main/dir")
	assert.Contains(t, err.Error(), "/blob/<commit>/<path>")
}

func BenchmarkParseLink(b *testing.B) {
	raw := "https://github.com/erikrose/more-itertools/blob/master/more_itertools/recipes.py#L74"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = parse.ParseLink(raw)
	}
}
