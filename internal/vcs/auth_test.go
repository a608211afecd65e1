package vcs

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

func writeKey(t *testing.T, passphrase string) string {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	var block *pem.Block
	if passphrase == "" {
		block, err = ssh.MarshalPrivateKey(priv, "")
	} else {
		block, err = ssh.MarshalPrivateKeyWithPassphrase(priv, "", []byte(passphrase))
	}
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id_ed25519")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(block), 0o600))
	return path
}

func TestSSHKeyAuthLocalRemote(t *testing.T) {
	auth, err := SSHKeyAuth("/does/not/exist")("/srv/git/store.git")
	require.NoError(t, err)
	assert.Nil(t, auth)
}

func TestSSHKeyAuthUsernameFromURL(t *testing.T) {
	key := writeKey(t, "")

	tests := []struct {
		url  string
		user string
	}{
		{url: "deploy@example.com:me/store.git", user: "deploy"},
		{url: "ssh://example.com/me/store.git", user: "git"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			auth, err := SSHKeyAuth(key)(tt.url)
			require.NoError(t, err)
			keys, ok := auth.(*gitssh.PublicKeys)
			require.True(t, ok)
			assert.Equal(t, tt.user, keys.User)
		})
	}
}

func TestSSHKeyAuthFailures(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "garbage")
	require.NoError(t, os.WriteFile(garbage, []byte("not a key"), 0o600))

	tests := []struct {
		name   string
		key    string
		detail string
	}{
		{name: "missing key", key: filepath.Join(t.TempDir(), "id_rsa"), detail: "unable to read"},
		{name: "passphrase protected", key: writeKey(t, "secret"), detail: "passphrase"},
		{name: "unparseable", key: garbage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SSHKeyAuth(tt.key)("git@example.com:me/store.git")
			require.Error(t, err)
			assert.Equal(t, kerrors.KindAuthFailure, kerrors.KindOf(err))
			if tt.detail != "" {
				assert.Contains(t, err.Error(), tt.detail)
			}
		})
	}
}
