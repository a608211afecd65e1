package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/ui"
	"github.com/heyvito/oxio/internal/workflows"
)

var doctorJSONOutput bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
	RootCmd.AddCommand(doctorCmd)
}

func resetDoctorCommandState() {
	doctorJSONOutput = false
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks on the local store",
	Long: `Runs a series of health checks on the local store and reports issues.

The doctor command checks:
  - The store directory exists
  - The index matches the item files on disk
  - Every item file decodes and matches its address
  - Sync setup (remote, .gitignore, git identity, ssh key) when synced

Exit codes:
  0 - All checks passed
  1 - Warnings found (non-critical issues)
  2 - Errors found (critical issues)

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting doctor command")

	spinner, cleanup := startSpinner(cmd, "Running health checks...")
	defer cleanup()

	result, err := workflows.Doctor(cmd.Context(), Env)
	if err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to run health checks: " + err.Error()
		return &exitError{code: 2}
	}

	for _, check := range result.Checks {
		Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status, check.Message)
	}

	if doctorJSONOutput {
		if err := outputDoctorJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		printDoctorResults(cmd.OutOrStdout(), result)
		switch {
		case result.Summary.HasErrors():
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Health checks completed with errors"
		case result.Summary.Warnings > 0:
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Health checks completed with warnings"
		default:
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Health checks completed"
		}
	}

	if result.Summary.HasErrors() {
		return &exitError{code: 2}
	}
	if result.Summary.Warnings > 0 {
		return &exitError{code: 1}
	}
	return nil
}

func outputDoctorJSON(w io.Writer, result *workflows.DoctorResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printDoctorResults(w io.Writer, result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var icon string
		switch check.Status {
		case workflows.CheckPass:
			icon = ui.Success.Sprint("✓")
		case workflows.CheckWarning:
			icon = ui.Warning.Sprint("⚠")
		case workflows.CheckError:
			icon = ui.Error.Sprint("✗")
		}
		fmt.Fprintf(w, "%s %s: %s\n", icon, check.Name, check.Message)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Fprintf(w, ", %s", ui.Warning.Sprintf("%d warning(s)", result.Summary.Warnings))
	}
	if result.Summary.Errors > 0 {
		fmt.Fprintf(w, ", %s", ui.Error.Sprintf("%d error(s)", result.Summary.Errors))
	}
	fmt.Fprintln(w)

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Suggestions:")
		for _, s := range result.Suggestions {
			fmt.Fprintf(w, "  %s %s\n", ui.Info.Sprint("→"), s)
		}
	}
}
