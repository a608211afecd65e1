// Package errors provides typed error values for oxio.
//
// Every failure produced by the core carries a Kind from a closed
// enumeration, so callers can branch on the kind of failure instead of
// matching on message text.
//
// # Error Kinds
//
//   - KindIO: filesystem failures
//   - KindCorruptEntry: malformed item or index file (recoverable by reindexing)
//   - KindNotFound: a lookup that found nothing, when it must be reported as an error
//   - KindAlreadyExists, KindAlreadyInitialized: init-style precondition violations
//   - KindAuthFailure, KindRemote: clone/fetch/push transport failures
//   - KindRebaseConflict: rebase could not be applied cleanly
//   - KindConfig: missing git identity or invalid configuration
//   - KindInvalidInput: rejected arguments (reserved or empty names)
//
// # Usage
//
// Check for a kind with errors.Is and the per-kind sentinels:
//
//	items, err := st.LoadAll()
//	if errors.Is(err, kerrors.ErrCorruptEntry) {
//	    // suggest `oxio reindex`
//	}
//
// Or switch on the kind directly:
//
//	switch kerrors.KindOf(err) {
//	case kerrors.KindAuthFailure:
//	    ...
//	}
package errors
