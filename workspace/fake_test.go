package workspace_test

import (
	"context"
	"fmt"
)

// fakeRepo is an in-memory working copy that records mutating calls.
type fakeRepo struct {
	dir         string
	head        string
	refs        map[string]string
	files       map[string]bool
	dirty       bool
	stashErr    error
	checkoutErr error
	calls       []string
}

func (r *fakeRepo) Dir() string { return r.dir }

func (r *fakeRepo) Head() (string, error) { return r.head, nil }

func (r *fakeRepo) Resolve(rev string) (string, error) {
	if hash, ok := r.refs[rev]; ok {
		return hash, nil
	}
	return "", fmt.Errorf("reference not found: %s", rev)
}

func (r *fakeRepo) HasFile(rev, path string) bool {
	hash, err := r.Resolve(rev)
	if err != nil {
		return false
	}
	return r.files[hash+":"+path]
}

func (r *fakeRepo) IsDirty() (bool, error) { return r.dirty, nil }

func (r *fakeRepo) Stash(_ context.Context, _ string) error {
	r.calls = append(r.calls, "stash")
	if r.stashErr != nil {
		return r.stashErr
	}
	r.dirty = false
	return nil
}

func (r *fakeRepo) Checkout(_ context.Context, rev string) error {
	r.calls = append(r.calls, "checkout "+rev)
	if r.checkoutErr != nil {
		return r.checkoutErr
	}
	r.head = r.refs[rev]
	return nil
}
