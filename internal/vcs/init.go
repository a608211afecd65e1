package vcs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/google/uuid"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

// InitEmpty clones url into the store root, which must not exist yet, and
// returns the number of items found in the clone.
func (e *Engine) InitEmpty(ctx context.Context, url string) (int, error) {
	root := e.store.Root()
	if pathExists(root) {
		return 0, &kerrors.Error{
			Kind:   kerrors.KindAlreadyExists,
			Op:     "sync init",
			Path:   root,
			Detail: "local store already exists; use `oxio sync merge URL` to attach it to a remote",
		}
	}

	e.log.Infof("Cloning %s", url)
	repo, err := e.clone(ctx, url, root)
	if err != nil {
		return 0, err
	}
	if err := e.Prepare(ctx, repo); err != nil {
		_ = os.RemoveAll(root)
		return 0, err
	}
	return e.store.Reindex()
}

// InitExisting attaches the local store to url, pushing its items and
// merging them with whatever the remote already holds.
func (e *Engine) InitExisting(ctx context.Context, url string) (int, error) {
	root := e.store.Root()
	if !pathExists(root) {
		return e.InitEmpty(ctx, url)
	}
	if _, err := git.PlainOpen(root); err == nil {
		return 0, &kerrors.Error{
			Kind:   kerrors.KindAlreadyInitialized,
			Op:     "sync merge",
			Path:   root,
			Detail: "store is already a git repository; use `oxio sync` instead",
		}
	}

	if _, err := e.store.Reindex(); err != nil {
		return 0, err
	}
	items, err := e.store.LoadAll()
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		e.log.Infof("Local store is empty, replacing it with a clone")
		if err := os.RemoveAll(root); err != nil {
			return 0, kerrors.IO("remove empty store", root, err)
		}
		return e.InitEmpty(ctx, url)
	}

	staging := siblingPath(root, "sync")
	swapped := false
	defer func() {
		if !swapped {
			_ = os.RemoveAll(staging)
		}
	}()

	e.log.Infof("Cloning %s", url)
	repo, err := e.clone(ctx, url, staging)
	if err != nil {
		return 0, err
	}
	if err := e.Prepare(ctx, repo); err != nil {
		return 0, err
	}

	e.log.Infof("Copying %d item(s)", len(items))
	for _, it := range items {
		if err := copyFile(e.store.Path(it.Filename), filepath.Join(staging, it.Filename)); err != nil {
			return 0, err
		}
	}
	if err := e.PerformSync(ctx, repo); err != nil {
		return 0, err
	}

	backup, err := swapDirs(root, staging)
	if err != nil {
		return 0, err
	}
	swapped = true
	if err := os.RemoveAll(backup); err != nil {
		e.log.Warnf("Could not remove previous store at %s: %v", backup, err)
	}
	return e.store.Reindex()
}

// clone clones url into dir. An empty remote yields a fresh repository
// with the remote configured.
func (e *Engine) clone(ctx context.Context, url, dir string) (*git.Repository, error) {
	auth, err := e.auth(url)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:        url,
		Auth:       auth,
		RemoteName: e.remote,
	})
	if err == nil {
		return repo, nil
	}
	if !errors.Is(err, transport.ErrEmptyRemoteRepository) {
		_ = os.RemoveAll(dir)
		return nil, remoteError("clone", err)
	}

	e.log.Debugf("Remote is empty, initialising a new repository")
	if err := os.RemoveAll(dir); err != nil {
		return nil, kerrors.IO("clean clone directory", dir, err)
	}
	repo, err = git.PlainInit(dir, false)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.KindIO, "init repository", err)
	}
	if _, err := repo.CreateRemote(&config.RemoteConfig{Name: e.remote, URLs: []string{url}}); err != nil {
		return nil, kerrors.Wrap(kerrors.KindConfig, "add remote", err)
	}
	return repo, nil
}

// swapDirs replaces root with staging and returns where the previous root
// was moved. root is put back if staging cannot take its place.
func swapDirs(root, staging string) (string, error) {
	backup := siblingPath(root, "old")
	if err := os.Rename(root, backup); err != nil {
		return "", kerrors.IO("move store aside", root, err)
	}
	if err := os.Rename(staging, root); err != nil {
		if rerr := os.Rename(backup, root); rerr != nil {
			return "", kerrors.IO("restore store", backup, errors.Join(err, rerr))
		}
		return "", kerrors.IO("move synced store into place", staging, err)
	}
	return backup, nil
}

func siblingPath(root, tag string) string {
	return filepath.Join(filepath.Dir(root), filepath.Base(root)+"."+tag+"-"+uuid.NewString()[:8])
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return kerrors.IO("open item", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return kerrors.IO("create item", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return kerrors.IO("copy item", dst, err)
	}
	if err := out.Close(); err != nil {
		return kerrors.IO("copy item", dst, err)
	}
	return nil
}
