package vcs

import (
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

// signature builds the commit identity from user.name and user.email as
// seen through the merged local, global and system configuration.
func signature(repo *git.Repository) (*object.Signature, error) {
	cfg, err := repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.KindConfig, "read git config", err)
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, kerrors.New(kerrors.KindConfig, "resolve commit identity",
			"don't know who you are; set user.name and user.email in your git config")
	}
	return &object.Signature{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
		When:  time.Now(),
	}, nil
}

// Identity returns the commit identity sync would use. Outside a working
// tree only the global and system configuration are consulted.
func (e *Engine) Identity() (*object.Signature, error) {
	if repo, err := git.PlainOpen(e.store.Root()); err == nil {
		return signature(repo)
	}
	for _, scope := range []config.Scope{config.GlobalScope, config.SystemScope} {
		cfg, err := config.LoadConfig(scope)
		if err != nil {
			continue
		}
		if cfg.User.Name != "" && cfg.User.Email != "" {
			return &object.Signature{Name: cfg.User.Name, Email: cfg.User.Email, When: time.Now()}, nil
		}
	}
	return nil, kerrors.New(kerrors.KindConfig, "resolve commit identity",
		"don't know who you are; set user.name and user.email in your git config")
}
