// Package workflows implements oxio's user-facing operations.
//
// Each workflow handles a single command's logic, independent of CLI
// concerns like argument parsing, spinners, clipboard access and output
// formatting. The cmd package is a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows take the shared collaborators from an Env (settings, store,
// audit log, editor, logger) and record an audit entry for every mutation.
//
// # Available Workflows
//
//   - Set, Get, Edit: store, look up (exactly or by closest name) and edit items
//   - List: every item, grouped, optionally filtered by a glob
//   - RemoveItem, RemoveGroup: delete one item or a whole group
//   - Reindex: rebuild the index from the files on disk
//   - Sync, SyncInit, SyncMerge: git-backed synchronisation
//   - Doctor: health checks
//   - Log: read back the audit trail
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package so the
// CLI layer can choose messages without string matching:
//
//	result, err := workflows.Get(ctx, env, opts)
//	if kerrors.Is(err, kerrors.ErrNotFound) {
//	    // offer result.Suggestions
//	}
package workflows
