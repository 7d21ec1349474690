package workspace_test

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-link/errors"
	"repo-link/helpers"
	"repo-link/model"
	"repo-link/workspace"
)

var itertoolsLink = model.Link{
	HostBase:   "https://github.com",
	User:       "erikrose",
	Repository: "more-itertools",
	Commit:     "master",
	Path:       "more_itertools/recipes.py",
	Line:       74,
}

type recordingCloner struct {
	url      string
	dest     string
	progress io.Writer
	calls    int
	err      error
}

func (c *recordingCloner) Clone(_ context.Context, url, dest string, progress io.Writer) error {
	c.calls++
	c.url, c.dest, c.progress = url, dest, progress
	if err := os.MkdirAll(filepath.Join(dest, ".git"), 0o755); err != nil {
		return err
	}
	return c.err
}

func TestProvision(t *testing.T) {
	helpers.SetColorEnabled(false)
	parent := t.TempDir()
	cloner := &recordingCloner{}
	var out bytes.Buffer

	dest, err := workspace.NewProvisioner(cloner, &out, false).
		Provision(context.Background(), itertoolsLink, parent)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(parent, "more-itertools"), dest)
	assert.Equal(t, "https://github.com/erikrose/more-itertools", cloner.url)
	assert.Equal(t, dest, cloner.dest)
	assert.Nil(t, cloner.progress)
	assert.Contains(t, out.String(), "Cloning https://github.com/erikrose/more-itertools into "+dest)
}

func TestProvisionWithProgress(t *testing.T) {
	cloner := &recordingCloner{}

	_, err := workspace.NewProvisioner(cloner, &bytes.Buffer{}, true).
		Provision(context.Background(), itertoolsLink, t.TempDir())

	require.NoError(t, err)
	assert.IsType(t, &helpers.CloneProgress{}, cloner.progress)
}

func TestProvisionCreatesParent(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "Forks")
	cloner := &recordingCloner{}

	dest, err := workspace.NewProvisioner(cloner, &bytes.Buffer{}, false).
		Provision(context.Background(), itertoolsLink, parent)

	require.NoError(t, err)
	assert.DirExists(t, dest)
}

func TestProvisionIntoEmptyDir(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "more-itertools"), 0o755))
	cloner := &recordingCloner{}

	_, err := workspace.NewProvisioner(cloner, &bytes.Buffer{}, false).
		Provision(context.Background(), itertoolsLink, parent)

	require.NoError(t, err)
	assert.Equal(t, 1, cloner.calls)
}

func TestProvisionTargetNotEmpty(t *testing.T) {
	parent := t.TempDir()
	target := filepath.Join(parent, "more-itertools")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "README"), []byte("x"), 0o644))
	cloner := &recordingCloner{}

	_, err := workspace.NewProvisioner(cloner, &bytes.Buffer{}, false).
		Provision(context.Background(), itertoolsLink, parent)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed))
	assert.Zero(t, cloner.calls)
}

func TestProvisionCloneFails(t *testing.T) {
	parent := t.TempDir()
	cloner := &recordingCloner{err: stderrors.New("repository not found")}

	_, err := workspace.NewProvisioner(cloner, &bytes.Buffer{}, false).
		Provision(context.Background(), itertoolsLink, parent)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCloneFailed))
	assert.Contains(t, err.Error(), "repository not found")
	assert.NoDirExists(t, filepath.Join(parent, "more-itertools"), "partial clone should be removed")
}

func TestClonerFunc(t *testing.T) {
	var gotURL string
	cloner := workspace.ClonerFunc(func(_ context.Context, url, _ string, _ io.Writer) error {
		gotURL = url
		return nil
	})

	require.NoError(t, cloner.Clone(context.Background(), "https://example.com/a/b", "/tmp/b", nil))
	assert.Equal(t, "https://example.com/a/b", gotURL)
}
