// Package vcs synchronises an oxio store with a remote git repository.
//
// The store root doubles as a git working tree. Every item file is tracked;
// the index file is excluded through .gitignore and rebuilt locally after
// each sync. Repository access goes through go-git. The one operation
// go-git lacks, rebasing local commits onto the fetched branch, runs
// through the git executable.
//
// # States
//
// Classify inspects the store root and reports one of:
//
//	NoLocalStore   the root does not exist
//	NotConfigured  the root exists but is not a git working tree
//	NoRemotes      the working tree has no remotes
//	Ready          the working tree can be synced
//
// # Sync
//
// A sync commits local changes as "Update items", fetches the current
// branch, rebases local commits onto it when the remote moved, and pushes.
// Item filenames are content addresses, so concurrent edits from different
// machines merge without conflicts unless files outside the item namespace
// (such as .gitignore) diverge.
//
// # Migration
//
// InitExisting turns an unmanaged store into a synced one. The remote is
// cloned next to the root, the existing items are copied in and pushed,
// and only then is the clone swapped into place.
package vcs
