package workflows

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/heyvito/oxio/internal/audit"
	kerrors "github.com/heyvito/oxio/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Group filters entries by group name.
	Group string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log yields no entries.
//
// Returns an InvalidInput error if the date format is invalid.
func Log(ctx context.Context, env *Env, opts LogOptions) (*LogResult, error) {
	entries, err := audit.ReadEntries(env.Settings.AuditPath)
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}
	filtered := entries

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return slices.Contains(ops, e.Operation)
		})
	}

	if opts.Group != "" {
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			return e.Group == opts.Group
		})
	}

	if opts.Since != "" {
		since, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, kerrors.New(kerrors.KindInvalidInput, "log", "--since date format invalid, use YYYY-MM-DD")
		}
		filtered = filterEntries(filtered, func(e audit.Entry) bool {
			ts, err := time.Parse(audit.TimeLayout, e.Timestamp)
			return err == nil && !ts.Before(since)
		})
	}

	if opts.Reverse {
		slices.Reverse(filtered)
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// Reversed: the first N are the most recent.
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterEntries(entries []audit.Entry, keep func(audit.Entry) bool) []audit.Entry {
	var out []audit.Entry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
