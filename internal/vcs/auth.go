package vcs

import (
	"errors"
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	gitssh "github.com/go-git/go-git/v5/plumbing/transport/ssh"
	"golang.org/x/crypto/ssh"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

// AuthFunc returns the credentials used to reach url. A nil AuthMethod
// means the transport needs none.
type AuthFunc func(url string) (transport.AuthMethod, error)

// SSHKeyAuth authenticates ssh remotes with the unencrypted private key at
// keyPath. The username comes from the remote URL. Local and file remotes
// get no credentials.
func SSHKeyAuth(keyPath string) AuthFunc {
	return func(url string) (transport.AuthMethod, error) {
		ep, err := transport.NewEndpoint(url)
		if err != nil {
			return nil, &kerrors.Error{Kind: kerrors.KindRemote, Op: "parse remote url", Detail: url, Err: err}
		}
		if ep.Protocol != "ssh" {
			return nil, nil
		}

		pem, err := os.ReadFile(keyPath)
		if err != nil {
			return nil, &kerrors.Error{
				Kind:   kerrors.KindAuthFailure,
				Op:     "load ssh key",
				Path:   keyPath,
				Detail: "unable to read private key",
				Err:    err,
			}
		}
		if _, err := ssh.ParsePrivateKey(pem); err != nil {
			var missing *ssh.PassphraseMissingError
			if errors.As(err, &missing) {
				return nil, &kerrors.Error{
					Kind:   kerrors.KindAuthFailure,
					Op:     "load ssh key",
					Path:   keyPath,
					Detail: "passphrase-protected keys are not supported",
				}
			}
			return nil, &kerrors.Error{Kind: kerrors.KindAuthFailure, Op: "load ssh key", Path: keyPath, Err: err}
		}

		user := ep.User
		if user == "" {
			user = gitssh.DefaultUsername
		}
		auth, err := gitssh.NewPublicKeys(user, pem, "")
		if err != nil {
			return nil, &kerrors.Error{Kind: kerrors.KindAuthFailure, Op: "load ssh key", Path: keyPath, Err: err}
		}
		return auth, nil
	}
}

// remoteError maps a transport failure to AuthFailure or Remote.
func remoteError(op string, err error) error {
	if errors.Is(err, transport.ErrAuthenticationRequired) ||
		errors.Is(err, transport.ErrAuthorizationFailed) ||
		strings.Contains(err.Error(), "unable to authenticate") {
		return &kerrors.Error{Kind: kerrors.KindAuthFailure, Op: op, Err: err}
	}
	return &kerrors.Error{Kind: kerrors.KindRemote, Op: op, Err: err}
}
