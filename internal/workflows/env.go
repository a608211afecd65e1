package workflows

import (
	"github.com/heyvito/oxio/internal/audit"
	"github.com/heyvito/oxio/internal/configs"
	"github.com/heyvito/oxio/internal/editor"
	"github.com/heyvito/oxio/internal/fuzzy"
	logger "github.com/heyvito/oxio/internal/logging"
	"github.com/heyvito/oxio/internal/store"
	"github.com/heyvito/oxio/internal/vcs"
)

// Env carries the collaborators shared by every workflow.
type Env struct {
	Settings *configs.Settings
	Store    *store.Store
	Audit    *audit.Log
	Editor   editor.Editor
	Logger   logger.Logger

	// Auth overrides the sync engine's ssh key authentication.
	Auth vcs.AuthFunc
}

// NewEnv builds an Env for settings. A nil audit log discards entries.
func NewEnv(settings *configs.Settings, log logger.Logger, auditLog *audit.Log) *Env {
	if auditLog == nil {
		auditLog = audit.Nop()
	}
	return &Env{
		Settings: settings,
		Store:    store.New(settings.StorePath),
		Audit:    auditLog,
		Editor:   editor.FromEnv(),
		Logger:   log,
	}
}

func (e *Env) engine() *vcs.Engine {
	return vcs.New(vcs.Options{
		Store:      e.Store,
		SSHKeyPath: e.Settings.SSHKeyPath,
		Branch:     e.Settings.Branch,
		Remote:     e.Settings.Remote,
		Auth:       e.Auth,
		Logger:     e.Logger,
	})
}

func (e *Env) resolver() *fuzzy.Resolver {
	return fuzzy.NewResolver(e.Store, e.Settings.Threshold)
}

// record writes an audit entry, noting err when the operation failed.
func (e *Env) record(entry audit.Entry, err error) {
	if err != nil {
		entry.Error = err.Error()
	}
	e.Audit.Record(entry)
}
