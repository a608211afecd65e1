// Package configs resolves oxio's settings.
//
// Settings start from built-in defaults and are overlaid with the optional
// TOML file at $XDG_CONFIG_HOME/oxio/config.toml (or the path given with
// --config):
//
//	[store]
//	path = "~/.oxio.cache"
//
//	[sync]
//	ssh_key = "~/.ssh/id_rsa"
//	branch = "main"
//	remote = "origin"
//
//	[lookup]
//	threshold = 2
//
//	[audit]
//	path = "~/.local/share/oxio/audit.jsonl"
//
// Every key is optional. Paths may start with ~. Unknown keys are an error
// so that typos do not silently fall back to defaults.
//
// The resolved Settings value is built once by the root command and passed
// explicitly to everything that needs it.
package configs
