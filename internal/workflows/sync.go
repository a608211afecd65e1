package workflows

import (
	"context"
	"strings"

	"github.com/heyvito/oxio/internal/audit"
	kerrors "github.com/heyvito/oxio/internal/errors"
	"github.com/heyvito/oxio/internal/vcs"
)

// SyncResult contains the number of items in the store after syncing.
type SyncResult struct {
	Count int
}

// Sync pushes local changes, pulls remote ones and rebuilds the index.
//
// Returns a NotFound error when there is no local store and a Config error
// when the store is not attached to a remote.
func Sync(ctx context.Context, env *Env) (*SyncResult, error) {
	n, err := env.engine().Sync(ctx)
	env.record(audit.Entry{Operation: "sync", Count: n}, err)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Count: n}, nil
}

// SyncRemoteOptions configures sync init and sync merge.
type SyncRemoteOptions struct {
	URL string
}

// SyncInit clones a remote into a store that does not exist yet.
//
// Returns an AlreadyExists error when the store root is present.
func SyncInit(ctx context.Context, env *Env, opts SyncRemoteOptions) (*SyncResult, error) {
	url, err := remoteArg(opts.URL)
	if err != nil {
		return nil, err
	}
	n, err := env.engine().InitEmpty(ctx, url)
	env.record(audit.Entry{Operation: "sync-init", Remote: url, Count: n}, err)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Count: n}, nil
}

// SyncMerge attaches an existing store to a remote, merging both sides.
//
// Returns an AlreadyInitialized error when the store is already a git
// working tree.
func SyncMerge(ctx context.Context, env *Env, opts SyncRemoteOptions) (*SyncResult, error) {
	url, err := remoteArg(opts.URL)
	if err != nil {
		return nil, err
	}
	n, err := env.engine().InitExisting(ctx, url)
	env.record(audit.Entry{Operation: "sync-merge", Remote: url, Count: n}, err)
	if err != nil {
		return nil, err
	}
	return &SyncResult{Count: n}, nil
}

// SyncStatus reports whether the store can be synced.
func SyncStatus(ctx context.Context, env *Env) (vcs.Status, error) {
	return env.engine().Classify(ctx)
}

func remoteArg(url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", kerrors.New(kerrors.KindInvalidInput, "sync", "a remote URL is required")
	}
	return url, nil
}
