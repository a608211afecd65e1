package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/audit"
	kerrors "github.com/heyvito/oxio/internal/errors"
	"github.com/heyvito/oxio/internal/ui"
	"github.com/heyvito/oxio/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logGroup     string
	logOperation string
	logSince     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logGroup, "group", "", "filter by group")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")

	RootCmd.AddCommand(logCmd)
}

func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logGroup = ""
	logOperation = ""
	logSince = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit log of store operations.

Values are never written to the log, only which item was touched and when.

Examples:
  oxio log                          # View full log
  oxio log -n 10                    # Last 10 entries
  oxio log --reverse                # Most recent first
  oxio log --group wifi             # Filter by group
  oxio log --operation set,rm-item  # Filter by operation
  oxio log --since 2024-01-01       # Filter by date
  oxio log --json                   # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(cmd.Context(), Env, workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Group:      logGroup,
		Since:      logSince,
	})
	if err != nil {
		return err
	}
	Logger.Debugf("Parsed %d entries, %d after filtering", result.TotalEntriesBeforeFilter, len(result.Entries))

	out := cmd.OutOrStdout()
	if logJSON {
		return outputLogJSON(out, result.Entries)
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Fprintln(out, "No audit log entries found.")
		} else {
			fmt.Fprintln(out, "No audit log entries found matching the filters.")
		}
		return nil
	}

	if logOneline {
		outputLogOneline(out, result.Entries)
		return nil
	}
	outputLogDefault(out, result.Entries)
	return nil
}

func outputLogJSON(w io.Writer, entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return kerrors.Wrap(kerrors.KindUnknown, "log", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func outputLogOneline(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s %s\n", formatLogTime(e.Timestamp, "2006-01-02"), e.Operation, formatLogDetails(e))
	}
}

func outputLogDefault(w io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%-19s  %-10s  %s\n", formatLogTime(e.Timestamp, "2006-01-02 15:04:05"), e.Operation, formatLogDetails(e))
	}
}

// formatLogTime renders an entry timestamp in local time, falling back to
// the raw value when it does not parse.
func formatLogTime(ts, layout string) string {
	t, err := time.Parse(audit.TimeLayout, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format(layout)
}

func formatLogDetails(e audit.Entry) string {
	var parts []string
	switch {
	case e.Group != "" && e.Name != "":
		parts = append(parts, e.Group+"/"+e.Name)
	case e.Group != "":
		parts = append(parts, e.Group)
	}
	if e.Remote != "" {
		parts = append(parts, e.Remote)
	}
	if e.Count != 0 {
		parts = append(parts, fmt.Sprintf("%d item(s)", e.Count))
	}
	if e.Error != "" {
		parts = append(parts, ui.Error.Sprint("failed: "+e.Error))
	}
	return strings.Join(parts, " ")
}
