package cmd

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/ui"
)

// startSpinner shows a spinner on stderr unless verbose or debug output is
// on, and returns a cleanup to defer. The spinner only animates on a
// terminal.
//
// FinalMSG does not need a trailing newline. The cleanup prints it to the
// command's output after the spinner line is cleared.
func startSpinner(cmd *cobra.Command, message string) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
	s.Suffix = " " + message
	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	quiet := !verbose && !debug
	if quiet {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		final := ""
		if s.FinalMSG != "" {
			final = ui.EnsureNewline(s.FinalMSG)
			s.FinalMSG = ""
		}
		if quiet {
			s.Stop()
		}
		if final != "" {
			fmt.Fprint(cmd.OutOrStdout(), final)
		}
	}
	return s, cleanup
}
