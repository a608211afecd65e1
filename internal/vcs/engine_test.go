package vcs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

func TestClassify(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "store")
	e, _ := newEngine(t, root)

	st, err := e.Classify(ctx)
	require.NoError(t, err)
	assert.Equal(t, NoLocalStore, st.State)

	require.NoError(t, os.Mkdir(root, 0o700))
	st, err = e.Classify(ctx)
	require.NoError(t, err)
	assert.Equal(t, NotConfigured, st.State)
	assert.NotEmpty(t, st.Reason)

	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	st, err = e.Classify(ctx)
	require.NoError(t, err)
	assert.Equal(t, NoRemotes, st.State)

	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{"/nowhere.git"}})
	require.NoError(t, err)
	st, err = e.Classify(ctx)
	require.NoError(t, err)
	assert.Equal(t, Ready, st.State)
}

func TestSyncRequiresReadyStore(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "store")
	e, _ := newEngine(t, root)

	_, err := e.Sync(ctx)
	assert.Equal(t, kerrors.KindNotFound, kerrors.KindOf(err))

	require.NoError(t, os.Mkdir(root, 0o700))
	_, err = e.Sync(ctx)
	assert.Equal(t, kerrors.KindConfig, kerrors.KindOf(err))

	_, err = git.PlainInit(root, false)
	require.NoError(t, err)
	_, err = e.Sync(ctx)
	assert.Equal(t, kerrors.KindConfig, kerrors.KindOf(err))
}

func TestSyncWithoutIdentity(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", "")

	root := filepath.Join(t.TempDir(), "store")
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{newBareRemote(t)}})
	require.NoError(t, err)

	e, s := newEngine(t, root)
	_, err = s.Create("home", "wifi", "hunter2")
	require.NoError(t, err)

	_, err = e.Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, kerrors.KindConfig, kerrors.KindOf(err))
	assert.Contains(t, err.Error(), "don't know who you are")
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "no local store", NoLocalStore.String())
	assert.Equal(t, "unknown", State(42).String())
}
