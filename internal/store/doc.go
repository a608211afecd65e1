// Package store implements oxio's content-addressed item storage and the
// index that summarises it.
//
// # Layout
//
// Every item lives in its own file directly under the store root. The file
// holds three codec fields (group, name, value) and is named after the
// lowercase hex SHA-1 digest of those encoded bytes, so identical content
// always lands in the same file. Files written by older versions end the
// value at end of file without a terminator and are addressed by those
// bytes; Read and Check accept both forms.
//
// The root also holds two reserved files that are never treated as items:
//
//   - .index: repeated (group, name, filename) triples, one per live item
//   - .gitignore: present when the store is synchronised with git
//
// # Index
//
// The index is a derived cache of the directory listing. It is rebuilt by
// Reindex after every mutation and read by LoadAll, which leaves values
// empty; Fill loads a value on demand.
//
// # Concurrency
//
// A store root is owned by a single process. Nothing here locks the root or
// detects concurrent mutation.
package store
