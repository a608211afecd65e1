package workflows

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/heyvito/oxio/internal/store"
	"github.com/heyvito/oxio/internal/vcs"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// HasErrors reports whether any check failed.
func (s DoctorSummary) HasErrors() bool {
	return s.Errors > 0
}

// Doctor runs health checks on the local store and its sync setup.
//
// The doctor workflow checks:
//   - Store root existence
//   - Index freshness against the files on disk
//   - Item files decode and match their content address
//   - Sync state, .gitignore, commit identity and ssh key when synced
func Doctor(ctx context.Context, env *Env) (*DoctorResult, error) {
	d := doctor{env: env, engine: env.engine()}

	results := []CheckResult{d.checkStoreRoot()}
	if env.Store.Exists() {
		results = append(results, d.checkIndex(), d.checkItems())
		results = append(results, d.checkSync(ctx)...)
	}

	summary := calculateDoctorSummary(results)

	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

type doctor struct {
	env    *Env
	engine *vcs.Engine
}

func (d doctor) checkStoreRoot() CheckResult {
	root := d.env.Store.Root()
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       "Store",
			Status:     CheckWarning,
			Message:    "No local store at " + root,
			Suggestion: "Create an item with 'oxio GROUP NAME VALUE' or clone one with 'oxio sync init URL'",
		}
	}
	if err != nil {
		return CheckResult{Name: "Store", Status: CheckError, Message: fmt.Sprintf("Cannot read %s: %v", root, err)}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:       "Store",
			Status:     CheckError,
			Message:    root + " is not a directory",
			Suggestion: "Move the file away or point [store] path at another directory",
		}
	}
	return CheckResult{Name: "Store", Status: CheckPass, Message: "Store found at " + root}
}

func (d doctor) checkIndex() CheckResult {
	const suggestion = "Run 'oxio reindex' to rebuild the index"

	if _, err := os.Stat(d.env.Store.IndexPath()); os.IsNotExist(err) {
		return CheckResult{Name: "Index", Status: CheckWarning, Message: "Index file is missing", Suggestion: suggestion}
	}
	report, err := d.env.Store.Verify()
	if err != nil {
		return CheckResult{Name: "Index", Status: CheckError, Message: "Index is unreadable: " + err.Error(), Suggestion: suggestion}
	}
	if !report.Fresh() {
		msg := fmt.Sprintf("Index is stale: %d file(s) not indexed, %d entr(ies) without a file",
			len(report.Missing), len(report.Stale))
		return CheckResult{Name: "Index", Status: CheckWarning, Message: msg, Suggestion: suggestion}
	}
	return CheckResult{Name: "Index", Status: CheckPass, Message: fmt.Sprintf("Index lists all %d item(s)", report.Indexed)}
}

func (d doctor) checkItems() CheckResult {
	files, err := d.env.Store.Files()
	if err != nil {
		return CheckResult{Name: "Items", Status: CheckError, Message: err.Error()}
	}
	var bad []string
	for _, f := range files {
		if err := d.env.Store.Check(f); err != nil {
			d.env.Logger.Debugf("Item check failed: %v", err)
			bad = append(bad, f)
		}
	}
	if len(bad) > 0 {
		return CheckResult{
			Name:       "Items",
			Status:     CheckError,
			Message:    fmt.Sprintf("%d of %d item file(s) are corrupt: %s", len(bad), len(files), strings.Join(bad, ", ")),
			Suggestion: "Remove or restore the corrupt files, then run 'oxio reindex'",
		}
	}
	return CheckResult{Name: "Items", Status: CheckPass, Message: fmt.Sprintf("All %d item file(s) are readable", len(files))}
}

func (d doctor) checkSync(ctx context.Context) []CheckResult {
	st, err := d.engine.Classify(ctx)
	if err != nil {
		return []CheckResult{{Name: "Sync", Status: CheckError, Message: err.Error()}}
	}
	switch st.State {
	case vcs.NotConfigured:
		return []CheckResult{{
			Name:       "Sync",
			Status:     CheckWarning,
			Message:    "Store is not synced",
			Suggestion: "Run 'oxio sync merge URL' to sync this store with a git remote",
		}}
	case vcs.NoRemotes:
		return []CheckResult{{
			Name:       "Sync",
			Status:     CheckError,
			Message:    "Store is a git repository without remotes",
			Suggestion: "Add a remote with 'git remote add origin URL' inside the store",
		}}
	case vcs.NoLocalStore:
		return nil
	}

	url, err := d.engine.RemoteURL()
	if err != nil {
		return []CheckResult{{Name: "Sync", Status: CheckError, Message: err.Error()}}
	}
	return []CheckResult{
		{Name: "Sync", Status: CheckPass, Message: "Syncing with " + url},
		d.checkGitignore(),
		d.checkIdentity(),
		d.checkAuth(url),
	}
}

func (d doctor) checkGitignore() CheckResult {
	path := d.env.Store.Path(store.IgnoreFilename)
	f, err := os.Open(path)
	if err != nil {
		return CheckResult{
			Name:       "Gitignore",
			Status:     CheckError,
			Message:    store.IgnoreFilename + " is missing, the index would be committed",
			Suggestion: "Add a line '" + store.IndexFilename + "' to " + path,
		}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == store.IndexFilename || line == "/"+store.IndexFilename {
			return CheckResult{Name: "Gitignore", Status: CheckPass, Message: "Index file is ignored by git"}
		}
	}
	return CheckResult{
		Name:       "Gitignore",
		Status:     CheckError,
		Message:    store.IgnoreFilename + " does not ignore the index",
		Suggestion: "Add a line '" + store.IndexFilename + "' to " + path,
	}
}

func (d doctor) checkIdentity() CheckResult {
	sig, err := d.engine.Identity()
	if err != nil {
		return CheckResult{
			Name:       "Identity",
			Status:     CheckError,
			Message:    "No git commit identity configured",
			Suggestion: "Run 'git config --global user.name NAME' and 'git config --global user.email EMAIL'",
		}
	}
	return CheckResult{Name: "Identity", Status: CheckPass, Message: fmt.Sprintf("Committing as %s <%s>", sig.Name, sig.Email)}
}

func (d doctor) checkAuth(url string) CheckResult {
	if err := d.engine.CheckAuth(url); err != nil {
		return CheckResult{
			Name:       "SSH key",
			Status:     CheckError,
			Message:    err.Error(),
			Suggestion: "Point [sync] ssh_key at an unencrypted private key authorised on the remote",
		}
	}
	return CheckResult{Name: "SSH key", Status: CheckPass, Message: "Credentials for the remote are usable"}
}

func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, r := range results {
		switch r.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
