package vcs

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

const updateItemsMessage = "Update items"

// PerformSync commits local changes, integrates the remote branch and
// pushes the result. The index is not touched.
func (e *Engine) PerformSync(ctx context.Context, repo *git.Repository) error {
	sig, err := signature(repo)
	if err != nil {
		return err
	}
	wt, root, err := worktreeRoot(repo)
	if err != nil {
		return err
	}

	committed, err := commitAll(wt, root, sig, updateItemsMessage)
	if err != nil {
		return err
	}
	if committed {
		e.log.Infof("Committed local changes")
	}

	branch, err := currentBranch(repo)
	if err != nil {
		return err
	}
	remote, err := e.pickRemote(repo)
	if err != nil {
		return err
	}
	url, err := remoteURL(remote)
	if err != nil {
		return err
	}
	auth, err := e.auth(url)
	if err != nil {
		return err
	}
	remoteName := remote.Config().Name

	e.log.Infof("Fetching %s from %s", branch, remoteName)
	fetched, found, err := fetchBranch(ctx, repo, remoteName, branch, auth)
	if err != nil {
		return err
	}

	if found {
		if err := e.integrate(ctx, repo, wt, root, branch, sig, fetched); err != nil {
			return err
		}
	} else {
		e.log.Debugf("Remote %s has no branch %s yet", remoteName, branch)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		e.log.Debugf("Nothing to push on an empty branch")
		return nil
	}
	if err != nil {
		return kerrors.Wrap(kerrors.KindConfig, "read HEAD", err)
	}
	// A branch that is ahead of the remote without a fresh commit is left
	// over from an earlier failed push.
	if !committed && found && head.Hash() == fetched {
		e.log.Debugf("Already up to date with %s/%s", remoteName, branch)
		return nil
	}

	e.log.Infof("Pushing %s to %s", branch, remoteName)
	return pushBranch(ctx, repo, remoteName, branch, auth)
}

// commitAll stages every change in the working tree, deletions included,
// and commits them. Ignored files are skipped.
func commitAll(wt *git.Worktree, root string, sig *object.Signature, msg string) (bool, error) {
	status, err := wt.Status()
	if err != nil {
		return false, kerrors.Wrap(kerrors.KindIO, "read worktree status", err)
	}
	if status.IsClean() {
		return false, nil
	}

	for path, fs := range status {
		if fs.Staging == git.Deleted && fs.Worktree == git.Unmodified {
			continue
		}
		if pathExists(filepath.Join(root, filepath.FromSlash(path))) {
			_, err = wt.Add(path)
		} else {
			_, err = wt.Remove(path)
		}
		if err != nil {
			return false, kerrors.IO("stage change", path, err)
		}
	}

	if _, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		return false, kerrors.Wrap(kerrors.KindIO, "commit", err)
	}
	return true, nil
}

func currentBranch(repo *git.Repository) (string, error) {
	head, err := repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		return "", kerrors.Wrap(kerrors.KindConfig, "read HEAD", err)
	}
	if head.Type() != plumbing.SymbolicReference || !head.Target().IsBranch() {
		return "", kerrors.New(kerrors.KindConfig, "resolve branch", "HEAD is detached; check out a branch first")
	}
	return head.Target().Short(), nil
}

// fetchBranch updates refs/remotes/<remote>/<branch>. found is false when
// the remote does not have the branch yet.
func fetchBranch(ctx context.Context, repo *git.Repository, remote, branch string, auth transport.AuthMethod) (plumbing.Hash, bool, error) {
	spec := config.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", branch, remote, branch))
	err := repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       auth,
	})
	var noMatch git.NoMatchingRefSpecError
	switch {
	case err == nil, errors.Is(err, git.NoErrAlreadyUpToDate):
	case errors.As(err, &noMatch), errors.Is(err, transport.ErrEmptyRemoteRepository):
		return plumbing.ZeroHash, false, nil
	default:
		return plumbing.ZeroHash, false, remoteError("fetch", err)
	}

	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(remote, branch), true)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, false, nil
	}
	if err != nil {
		return plumbing.ZeroHash, false, kerrors.Wrap(kerrors.KindRemote, "read fetched branch", err)
	}
	return ref.Hash(), true, nil
}

// integrate moves the local branch on top of fetched. Nothing happens when
// fetched is already part of the local history.
func (e *Engine) integrate(ctx context.Context, repo *git.Repository, wt *git.Worktree, root, branch string, sig *object.Signature, fetched plumbing.Hash) error {
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		e.log.Infof("Checking out remote branch %s", branch)
		ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), fetched)
		if err := repo.Storer.SetReference(ref); err != nil {
			return kerrors.Wrap(kerrors.KindIO, "update branch", err)
		}
		if err := wt.Reset(&git.ResetOptions{Commit: fetched, Mode: git.HardReset}); err != nil {
			return kerrors.Wrap(kerrors.KindIO, "check out branch", err)
		}
		return nil
	}
	if err != nil {
		return kerrors.Wrap(kerrors.KindConfig, "read HEAD", err)
	}
	if head.Hash() == fetched {
		return nil
	}

	local, err := repo.CommitObject(head.Hash())
	if err != nil {
		return kerrors.Wrap(kerrors.KindIO, "read local commit", err)
	}
	upstream, err := repo.CommitObject(fetched)
	if err != nil {
		return kerrors.Wrap(kerrors.KindIO, "read fetched commit", err)
	}
	contained, err := upstream.IsAncestor(local)
	if err != nil {
		return kerrors.Wrap(kerrors.KindIO, "compare histories", err)
	}
	if contained {
		return nil
	}

	e.log.Infof("Rebasing local changes onto %s", fetched.String()[:7])
	return rebaseOnto(ctx, root, sig, fetched)
}

func pushBranch(ctx context.Context, repo *git.Repository, remote, branch string, auth transport.AuthMethod) error {
	spec := config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch))
	err := repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       auth,
	})
	if err == nil || errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return remoteError("push", err)
}
