package vcs

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

func TestIdentityOutsideRepository(t *testing.T) {
	withIdentity(t)
	e, _ := newEngine(t, filepath.Join(t.TempDir(), "store"))

	sig, err := e.Identity()
	require.NoError(t, err)
	assert.Equal(t, "Oxio Test", sig.Name)
	assert.Equal(t, "oxio@example.com", sig.Email)
}

func TestIdentityPrefersRepositoryConfig(t *testing.T) {
	withIdentity(t)
	root := filepath.Join(t.TempDir(), "store")
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Local Name"
	cfg.User.Email = "local@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	e, _ := newEngine(t, root)
	sig, err := e.Identity()
	require.NoError(t, err)
	assert.Equal(t, "Local Name", sig.Name)
}

func TestIdentityMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	e, _ := newEngine(t, filepath.Join(t.TempDir(), "store"))

	_, err := e.Identity()
	require.Error(t, err)
	assert.Equal(t, kerrors.KindConfig, kerrors.KindOf(err))
}
