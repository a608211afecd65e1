package vcs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	kerrors "github.com/heyvito/oxio/internal/errors"
	"github.com/heyvito/oxio/internal/store"
)

// Prepare gets a freshly cloned repository ready to hold a store: HEAD
// points at a branch and .gitignore excludes the index file. Any change is
// committed and pushed.
func (e *Engine) Prepare(ctx context.Context, repo *git.Repository) error {
	sig, err := signature(repo)
	if err != nil {
		return err
	}
	if err := e.ensureBranch(repo); err != nil {
		return err
	}
	wt, root, err := worktreeRoot(repo)
	if err != nil {
		return err
	}

	path := filepath.Join(root, store.IgnoreFilename)
	current, err := os.ReadFile(path)
	existed := err == nil
	if err != nil && !os.IsNotExist(err) {
		return kerrors.IO("read ignore file", path, err)
	}
	if existed && ignoresIndex(current) {
		e.log.Debugf("%s already ignores %s", store.IgnoreFilename, store.IndexFilename)
		return nil
	}

	updated := current
	if len(updated) > 0 && !bytes.HasSuffix(updated, []byte("\n")) {
		updated = append(updated, '\n')
	}
	updated = append(updated, store.IndexFilename+"\n"...)
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return kerrors.IO("write ignore file", path, err)
	}
	if _, err := wt.Add(store.IgnoreFilename); err != nil {
		return kerrors.IO("stage change", store.IgnoreFilename, err)
	}

	msg := "Add .gitignore"
	if existed {
		msg = "Update .gitignore"
	}
	if _, err := wt.Commit(msg, &git.CommitOptions{Author: sig, Committer: sig}); err != nil {
		return kerrors.Wrap(kerrors.KindIO, "commit", err)
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
	e.log.Infof("Pushing %s to %s", branch, remote.Config().Name)
	return pushBranch(ctx, repo, remote.Config().Name, branch, auth)
}

// ensureBranch points an unborn HEAD at the engine's default branch.
func (e *Engine) ensureBranch(repo *git.Repository) error {
	_, err := repo.Head()
	if err == nil {
		return nil
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return kerrors.Wrap(kerrors.KindConfig, "read HEAD", err)
	}
	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(e.branch))
	if err := repo.Storer.SetReference(head); err != nil {
		return kerrors.Wrap(kerrors.KindIO, "set default branch", err)
	}
	return nil
}

func ignoresIndex(content []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == store.IndexFilename || line == "/"+store.IndexFilename {
			return true
		}
	}
	return false
}
