package cmd

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	kerrors "github.com/heyvito/oxio/internal/errors"
	"github.com/heyvito/oxio/internal/store"
	"github.com/heyvito/oxio/internal/ui"
	"github.com/heyvito/oxio/internal/utils"
	"github.com/heyvito/oxio/internal/workflows"
)

// stdoutIsTerminal decides between copying and printing. Tests replace it.
var stdoutIsTerminal = utils.StdoutIsTerminal

// writeClipboard is the clipboard sink. Tests replace it.
var writeClipboard = clipboard.WriteAll

func runGet(cmd *cobra.Command, group, name string) error {
	result, err := workflows.Get(cmd.Context(), Env, workflows.GetOptions{Group: group, Name: name})
	if err != nil {
		if result != nil && len(result.Suggestions) > 0 {
			var hint string
			if len(result.Suggestions) == 1 {
				hint = "Did you mean " + ui.Name.Sprint(result.Suggestions[0]) + "?"
			} else {
				quoted := make([]string, len(result.Suggestions))
				for i, s := range result.Suggestions {
					quoted[i] = ui.Name.Sprint(s)
				}
				hint = "Did you mean one of " + strings.Join(quoted, ", ") + "?"
			}
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Info.Sprint("→")+" "+hint)
		}
		return err
	}
	return copyOrPrint(cmd, result.Item)
}

// copyOrPrint puts the value on the clipboard when a person is watching
// and prints it as-is when output is piped.
func copyOrPrint(cmd *cobra.Command, it store.Item) error {
	if printValue || !stdoutIsTerminal() {
		fmt.Fprintln(cmd.OutOrStdout(), it.Value)
		return nil
	}

	if err := writeClipboard(it.Value); err != nil {
		return kerrors.Wrap(kerrors.KindIO, "write clipboard", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (from %s->%s) is now in your clipboard!\n", ui.Preview(it.Value), it.Group, it.Name)
	return nil
}
