package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	kerrors "github.com/heyvito/oxio/internal/errors"
)

func runGit(ctx context.Context, dir string, env []string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return string(out), nil
}

// rebaseOnto replays the commits of the checked out branch on top of onto.
// A failed rebase is aborted so the working tree is left as it was.
func rebaseOnto(ctx context.Context, dir string, sig *object.Signature, onto plumbing.Hash) error {
	if _, err := exec.LookPath("git"); err != nil {
		return &kerrors.Error{
			Kind:   kerrors.KindConfig,
			Op:     "rebase",
			Detail: "the git executable is required to merge remote changes",
			Err:    err,
		}
	}

	env := []string{
		"GIT_COMMITTER_NAME=" + sig.Name,
		"GIT_COMMITTER_EMAIL=" + sig.Email,
		"GIT_EDITOR=true",
		"GIT_TERMINAL_PROMPT=0",
	}
	if _, err := runGit(ctx, dir, env, "rebase", onto.String()); err != nil {
		_, _ = runGit(ctx, dir, env, "rebase", "--abort")
		return &kerrors.Error{
			Kind:   kerrors.KindRebaseConflict,
			Op:     "rebase",
			Path:   dir,
			Detail: "local changes conflict with the remote; resolve them with git and sync again",
			Err:    err,
		}
	}
	return nil
}
