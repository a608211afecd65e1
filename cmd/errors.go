package cmd

import (
	kerrors "github.com/heyvito/oxio/internal/errors"
	"github.com/heyvito/oxio/internal/ui"
)

// errorMessage renders err for the terminal, adding a hint for the kinds a
// user can do something about.
func errorMessage(err error) string {
	msg := ui.Error.Sprint("✗") + " " + describeError(err)
	if hint := errorHint(err); hint != "" {
		msg += "\n" + ui.Info.Sprint("→") + " " + hint
	}
	return msg
}

func describeError(err error) string {
	var e *kerrors.Error
	if !kerrors.As(err, &e) {
		return err.Error()
	}
	switch e.Kind {
	case kerrors.KindNotFound, kerrors.KindInvalidInput, kerrors.KindConfig:
		if e.Detail != "" {
			return capitalize(e.Detail)
		}
	case kerrors.KindCorruptEntry:
		return "Your store has a corrupted entry: " + err.Error()
	case kerrors.KindAlreadyInitialized:
		return "Your store is already synced with a git repository"
	case kerrors.KindAlreadyExists:
		return "A store already exists at " + ui.Path.Sprint(storeDir())
	case kerrors.KindRebaseConflict:
		return "Local and remote changes conflict and could not be rebased"
	case kerrors.KindAuthFailure:
		return "Authentication failed: " + err.Error()
	}
	return err.Error()
}

func errorHint(err error) string {
	switch kerrors.KindOf(err) {
	case kerrors.KindCorruptEntry:
		return "Try running " + ui.Code.Sprint("oxio reindex")
	case kerrors.KindAlreadyExists:
		return "Use " + ui.Code.Sprint("oxio sync merge URL") + " to attach an existing store to a remote"
	case kerrors.KindAlreadyInitialized:
		return "Run " + ui.Code.Sprint("oxio sync") + " to synchronize it"
	case kerrors.KindRebaseConflict:
		return "The store was left as it was before syncing. Resolve the conflict with git in " +
			ui.Path.Sprint(storeDir())
	case kerrors.KindAuthFailure:
		return "Check that your ssh key is loaded and has access to the remote"
	}
	return ""
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

func storeDir() string {
	if Settings == nil {
		return "the store directory"
	}
	return Settings.StorePath
}
