package vcs

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/go-git/go-git/v5"

	kerrors "github.com/heyvito/oxio/internal/errors"
	logger "github.com/heyvito/oxio/internal/logging"
	"github.com/heyvito/oxio/internal/store"
)

const (
	// DefaultBranch is used when a repository has no commits yet.
	DefaultBranch = "main"
	// DefaultRemote is the remote name given to cloned stores.
	DefaultRemote = "origin"
)

// State describes how far a store is from being syncable.
type State int

const (
	NoLocalStore State = iota
	NotConfigured
	NoRemotes
	Ready
)

func (s State) String() string {
	switch s {
	case NoLocalStore:
		return "no local store"
	case NotConfigured:
		return "not configured"
	case NoRemotes:
		return "no remotes"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Status is the result of Classify. Reason is set for NotConfigured.
type Status struct {
	State  State
	Reason string
}

// Options configures an Engine.
type Options struct {
	Store *store.Store
	// SSHKeyPath is the private key used for ssh remotes.
	SSHKeyPath string
	// Branch is the branch created when HEAD is unborn. Defaults to main.
	Branch string
	// Remote is the remote name used when cloning. Defaults to origin.
	Remote string
	// Auth overrides the default ssh key authentication.
	Auth   AuthFunc
	Logger logger.Logger
}

// Engine runs sync operations against a single store.
type Engine struct {
	store  *store.Store
	auth   AuthFunc
	branch string
	remote string
	log    logger.Logger
}

// New creates an Engine from opts.
func New(opts Options) *Engine {
	e := &Engine{
		store:  opts.Store,
		auth:   opts.Auth,
		branch: opts.Branch,
		remote: opts.Remote,
		log:    opts.Logger,
	}
	if e.branch == "" {
		e.branch = DefaultBranch
	}
	if e.remote == "" {
		e.remote = DefaultRemote
	}
	if e.auth == nil {
		e.auth = SSHKeyAuth(opts.SSHKeyPath)
	}
	return e
}

// Classify reports the sync state of the store root.
func (e *Engine) Classify(_ context.Context) (Status, error) {
	if !e.store.Exists() {
		return Status{State: NoLocalStore}, nil
	}
	repo, err := git.PlainOpen(e.store.Root())
	if err != nil {
		return Status{State: NotConfigured, Reason: err.Error()}, nil
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return Status{}, kerrors.Wrap(kerrors.KindConfig, "list remotes", err)
	}
	if len(remotes) == 0 {
		return Status{State: NoRemotes}, nil
	}
	return Status{State: Ready}, nil
}

// Sync brings a Ready store in line with its remote and rebuilds the
// index. It returns the number of indexed items.
func (e *Engine) Sync(ctx context.Context) (int, error) {
	st, err := e.Classify(ctx)
	if err != nil {
		return 0, err
	}
	switch st.State {
	case NoLocalStore:
		return 0, &kerrors.Error{
			Kind:   kerrors.KindNotFound,
			Op:     "sync",
			Path:   e.store.Root(),
			Detail: "no local store; run `oxio sync init URL` to clone one",
		}
	case NotConfigured:
		return 0, &kerrors.Error{
			Kind:   kerrors.KindConfig,
			Op:     "sync",
			Path:   e.store.Root(),
			Detail: "store is not a git repository; run `oxio sync merge URL` to attach it to a remote",
		}
	case NoRemotes:
		return 0, &kerrors.Error{
			Kind:   kerrors.KindConfig,
			Op:     "sync",
			Path:   e.store.Root(),
			Detail: "repository has no remotes configured",
		}
	}

	repo, err := git.PlainOpen(e.store.Root())
	if err != nil {
		return 0, kerrors.Wrap(kerrors.KindConfig, "open repository", err)
	}
	if err := e.PerformSync(ctx, repo); err != nil {
		return 0, err
	}
	return e.store.Reindex()
}

// pickRemote prefers the engine's remote name and falls back to the first
// remote by name.
func (e *Engine) pickRemote(repo *git.Repository) (*git.Remote, error) {
	r, err := repo.Remote(e.remote)
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, git.ErrRemoteNotFound) {
		return nil, kerrors.Wrap(kerrors.KindConfig, "read remote", err)
	}
	remotes, err := repo.Remotes()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.KindConfig, "list remotes", err)
	}
	if len(remotes) == 0 {
		return nil, kerrors.New(kerrors.KindConfig, "select remote", "repository has no remotes configured")
	}
	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Config().Name < remotes[j].Config().Name
	})
	return remotes[0], nil
}

func remoteURL(r *git.Remote) (string, error) {
	urls := r.Config().URLs
	if len(urls) == 0 {
		return "", kerrors.New(kerrors.KindConfig, "select remote", "remote "+r.Config().Name+" has no URL")
	}
	return urls[0], nil
}

func worktreeRoot(repo *git.Repository) (*git.Worktree, string, error) {
	wt, err := repo.Worktree()
	if err != nil {
		return nil, "", kerrors.Wrap(kerrors.KindConfig, "open worktree", err)
	}
	return wt, wt.Filesystem.Root(), nil
}

func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// RemoteURL returns the URL sync pushes to.
func (e *Engine) RemoteURL() (string, error) {
	repo, err := git.PlainOpen(e.store.Root())
	if err != nil {
		return "", kerrors.Wrap(kerrors.KindConfig, "open repository", err)
	}
	remote, err := e.pickRemote(repo)
	if err != nil {
		return "", err
	}
	return remoteURL(remote)
}

// CheckAuth builds the credentials for url without contacting the remote.
func (e *Engine) CheckAuth(url string) error {
	_, err := e.auth(url)
	return err
}
