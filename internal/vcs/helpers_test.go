package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/heyvito/oxio/internal/store"
)

// requireGit skips tests that need the git executable for rebasing.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
}

// withIdentity points HOME at a temporary directory holding a git config
// with a commit identity.
func withIdentity(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	cfg := "[user]\n\tname = Oxio Test\n\temail = oxio@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(cfg), 0o644))
}

// newBareRemote creates an empty bare repository whose HEAD names main.
func newBareRemote(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "remote.git")
	repo, err := git.PlainInit(dir, true)
	require.NoError(t, err)
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(DefaultBranch))
	require.NoError(t, repo.Storer.SetReference(head))
	return dir
}

func newEngine(t *testing.T, root string) (*Engine, *store.Store) {
	t.Helper()
	s := store.New(root)
	return New(Options{Store: s}), s
}

// newMachine clones remote into a fresh store, as a second computer would.
func newMachine(t *testing.T, remote string) (*Engine, *store.Store) {
	t.Helper()
	e, s := newEngine(t, filepath.Join(t.TempDir(), "store"))
	_, err := e.InitEmpty(context.Background(), remote)
	require.NoError(t, err)
	return e, s
}

func remoteHead(t *testing.T, remote string) *object.Commit {
	t.Helper()
	repo, err := git.PlainOpen(remote)
	require.NoError(t, err)
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(DefaultBranch), true)
	require.NoError(t, err)
	c, err := repo.CommitObject(ref.Hash())
	require.NoError(t, err)
	return c
}

func itemKeys(t *testing.T, s *store.Store) []string {
	t.Helper()
	items, err := s.LoadAll()
	require.NoError(t, err)
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Group+"/"+it.Name)
	}
	return keys
}
