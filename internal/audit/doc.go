// Package audit keeps a local, append-only trail of store mutations.
//
// Entries are written as JSON lines through a zap JSON core to
// $XDG_DATA_HOME/oxio/audit.jsonl by default:
//
//	{"ts":"2026-01-02T15:04:05.000000Z","op":"set","host":"laptop","group":"work","name":"email"}
//
// Group and item names are recorded; item values never are. The trail is
// local to the machine and is not synced. `oxio log` reads it back with
// ReadEntries.
package audit
